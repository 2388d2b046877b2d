package mcp

var ResultText = resultText

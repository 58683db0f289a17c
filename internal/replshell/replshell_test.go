package replshell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestREPL_PersistsBindingsAcrossLines(t *testing.T) {
	var out bytes.Buffer
	r := New(false, &out)

	r.processLine("x = 1 + 2;", &out)
	r.processLine("x;", &out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "x = 3")
	assert.Contains(t, lines[1], "= 3")
}

func TestREPL_ReportsTypeErrorsWithoutCrashing(t *testing.T) {
	var out bytes.Buffer
	r := New(false, &out)

	r.processLine("y = true + 1;", &out)
	assert.Contains(t, out.String(), "Error")
}

func TestREPL_TypeCommandReportsLastExpressionType(t *testing.T) {
	var out bytes.Buffer
	r := New(false, &out)

	quit := r.handleCommand(":type", &out)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "no expression evaluated yet")

	out.Reset()
	r.processLine("x = 1 + 2;", &out)

	out.Reset()
	quit = r.handleCommand(":type", &out)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "Int")
}

func TestREPL_HandleCommandHistoryAndQuit(t *testing.T) {
	var out bytes.Buffer
	r := New(false, &out)
	r.processLine("x = 5;", &out)
	r.history = append(r.history, "x = 5;")

	out.Reset()
	quit := r.handleCommand(":history", &out)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "x = 5;")

	quit = r.handleCommand(":quit", &out)
	assert.True(t, quit)
}

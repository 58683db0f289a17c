package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EndToEndArithmetic(t *testing.T) {
	var out bytes.Buffer
	logs, err := Run([]byte("x = 1 + 2 * 3;\nx;"), "t.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "x = 7", logs[0].Text)
	assert.Equal(t, "= 7", logs[1].Text)
}

func TestRun_TraitDispatchEndToEnd(t *testing.T) {
	src := `
trait Show a {
  show: a -> Int;
}
impl Show for Int {
  show = \x:Int. x;
}
y = show @Int 5;
`
	var out bytes.Buffer
	logs, err := Run([]byte(src), "t.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "y = 5", logs[1].Text)
}

func TestRun_SyntaxErrorReported(t *testing.T) {
	var out bytes.Buffer
	_, err := Run([]byte("x = ;"), "t.tlc", strings.NewReader(""), &out)
	require.Error(t, err)
}

func TestFormatDiagnostic_WithAndWithoutDebug(t *testing.T) {
	var out bytes.Buffer
	_, err := Run([]byte("x = 1 / 0;"), "t.tlc", strings.NewReader(""), &out)
	require.Error(t, err)

	plain := FormatDiagnostic(err, false)
	verbose := FormatDiagnostic(err, true)
	assert.NotContains(t, plain, "phase=")
	assert.Contains(t, verbose, "RUN001")
}

func TestAnnotateSource_InterleavesResultsOnTheirSourceLine(t *testing.T) {
	var out bytes.Buffer
	src := []byte("x = 1 + 2;\nx;\n")
	logs, err := Run(src, "t.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)

	identity := func(a ...interface{}) string { return fmt.Sprint(a...) }
	annotated := AnnotateSource(src, logs, identity)

	lines := strings.Split(annotated, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "x = 1 + 2;")
	assert.Contains(t, lines[0], "// => x = 3")
	assert.Contains(t, lines[1], "x;")
	assert.Contains(t, lines[1], "// => = 3")
}

// The remaining tests are the literal end-to-end scenarios of spec.md §8.

func TestScenario_S1_IdentityAtInt(t *testing.T) {
	src := `id = \a. \x:a. x;
id @Int 5;`
	var out bytes.Buffer
	logs, err := Run([]byte(src), "s1.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "= 5", logs[1].Text)
}

func TestScenario_S2_ShowForInt(t *testing.T) {
	src := `trait Show a { show: a -> String; }
impl Show for Int { show = int_to_string; }
println (show @Int 42);`
	var out bytes.Buffer
	_, err := Run([]byte(src), "s2.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out.String())
}

func TestScenario_S3_StructConstructorAndFieldAccess(t *testing.T) {
	src := `struct P { x: Int, y: Int; }
p = P 3 4;
p.x + p.y;`
	var out bytes.Buffer
	logs, err := Run([]byte(src), "s3.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "= 7", logs[2].Text)
}

func TestScenario_S4_BoundedGenericApplication(t *testing.T) {
	src := `trait Show a { show: a -> String; }
impl Show for Int { show = int_to_string; }
greet = \a impl Show. \v:a. "hi " + show @a v;
greet @Int 1;`
	var out bytes.Buffer
	logs, err := Run([]byte(src), "s4.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, `= "hi 1"`, logs[2].Text)
}

func TestScenario_S5_CaptureAvoidanceAcrossShadowedTypeParam(t *testing.T) {
	src := `f = \a. \x:a. \a. x;
f @Int;`
	var out bytes.Buffer
	_, err := Run([]byte(src), "s5.tlc", strings.NewReader(""), &out)
	require.NoError(t, err)
}

func TestScenario_S6_UnboundInstanceIsATypeError(t *testing.T) {
	src := `trait Show a { show: a -> String; }
show @Int 1;`
	var out bytes.Buffer
	_, err := Run([]byte(src), "s6.tlc", strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Contains(t, FormatDiagnostic(err, false), "does not satisfy trait bound")
}

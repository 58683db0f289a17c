package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_StringForms(t *testing.T) {
	assert.Equal(t, "true", (&BoolValue{Value: true}).String())
	assert.Equal(t, "-3", (&IntValue{Value: -3}).String())
	assert.Equal(t, `"a\"b"`, (&StringValue{Value: `a"b`}).String())
	assert.Equal(t, "[1, 2]", (&ListValue{Elements: []Value{&IntValue{Value: 1}, &IntValue{Value: 2}}}).String())
	assert.Equal(t, "{a = 1}", (&RecordValue{Fields: []RecordField{{Label: "a", Value: &IntValue{Value: 1}}}}).String())
}

func TestValue_Equality(t *testing.T) {
	a := &RecordValue{Fields: []RecordField{{Label: "x", Value: &IntValue{Value: 1}}}}
	b := &RecordValue{Fields: []RecordField{{Label: "x", Value: &IntValue{Value: 1}}}}
	c := &RecordValue{Fields: []RecordField{{Label: "x", Value: &IntValue{Value: 2}}}}
	assert.True(t, valuesEqual(a, b))
	assert.False(t, valuesEqual(a, c))
	assert.False(t, valuesEqual(&IntValue{Value: 1}, &BoolValue{Value: true}))
}

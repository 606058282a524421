package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

func TestFindEmbeddedData_Script(t *testing.T) {
	page := []byte(`<script>window.x=1;</script><script>var FB_PUBLIC_LOAD_DATA_ = [1,"a]b",[2]];var y=3;</script>`)

	lit, err := FindEmbeddedData(page)

	require.NoError(t, err)
	assert.Equal(t, `[1,"a]b",[2]]`, string(lit))
}

func TestFindEmbeddedData_EscapedQuotes(t *testing.T) {
	page := []byte(`<script>FB_PUBLIC_LOAD_DATA_=["say \"hi]\"", {"k": "}"}];</script>`)

	lit, err := FindEmbeddedData(page)

	require.NoError(t, err)
	assert.Equal(t, `["say \"hi]\"", {"k": "}"}]`, string(lit))
}

func TestFindEmbeddedData_SkipsNonAssignment(t *testing.T) {
	page := []byte(`<script>if (FB_PUBLIC_LOAD_DATA_) {}; FB_PUBLIC_LOAD_DATA_ = [7];</script>`)

	lit, err := FindEmbeddedData(page)

	require.NoError(t, err)
	assert.Equal(t, `[7]`, string(lit))
}

func TestFindEmbeddedData_RawFallback(t *testing.T) {
	lit, err := FindEmbeddedData([]byte(`FB_PUBLIC_LOAD_DATA_ = [[1]] trailing`))

	require.NoError(t, err)
	assert.Equal(t, `[[1]]`, string(lit))
}

func TestFindEmbeddedData_Unbalanced(t *testing.T) {
	_, err := FindEmbeddedData([]byte(`<script>FB_PUBLIC_LOAD_DATA_ = [1, [2</script>`))

	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestBalancedLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"array", `[1,2] rest`, `[1,2]`, true},
		{"object", `{"a":[1]};`, `{"a":[1]}`, true},
		{"single quotes", `['x]']`, `['x]']`, true},
		{"mismatched", `[1}`, "", false},
		{"not a literal", `abc`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := balancedLiteral([]byte(tt.input))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

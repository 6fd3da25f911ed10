package rtlweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParsePatchSet(t *testing.T) {
	t.Run("should parse a plain JSON response", func(t *testing.T) {
		raw := `{"edits": [{"name": "A", "code": "int x = 1;"}, {"name": "B", "code": ""}]}`
		patches, err := ParsePatchSet(raw)
		require.NoError(t, err)
		assert.Equal(t, PatchSet{"A": "int x = 1;", "B": ""}, patches)
	})

	t.Run("should strip one outer markdown fence before parsing", func(t *testing.T) {
		raw := "```json\n{\"edits\": [{\"name\": \"A\", \"code\": \"x\"}]}\n```"
		patches, err := ParsePatchSet(raw)
		require.NoError(t, err)
		assert.Equal(t, "x", patches["A"])
	})

	t.Run("should reject a response that is not JSON", func(t *testing.T) {
		_, err := ParsePatchSet("Sure! Here are the edits you asked for.")
		var perr *ProviderOutputError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "not a JSON object")
		assert.Contains(t, perr.Raw, "Sure!")
	})

	t.Run("should reject an object without an edits key", func(t *testing.T) {
		_, err := ParsePatchSet(`{"patches": []}`)
		var perr *ProviderOutputError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, `"edits"`)
	})

	t.Run("should reject edits that is not a list", func(t *testing.T) {
		_, err := ParsePatchSet(`{"edits": {"A": "code"}}`)
		var perr *ProviderOutputError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("should reject an entry missing its name", func(t *testing.T) {
		_, err := ParsePatchSet(`{"edits": [{"code": "x"}]}`)
		var perr *ProviderOutputError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("should reject an entry missing its code", func(t *testing.T) {
		_, err := ParsePatchSet(`{"edits": [{"name": "A"}]}`)
		var perr *ProviderOutputError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("should reject an empty region name", func(t *testing.T) {
		_, err := ParsePatchSet(`{"edits": [{"name": "  ", "code": "x"}]}`)
		var perr *ProviderOutputError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "empty")
	})

	t.Run("should keep the last entry when a name repeats", func(t *testing.T) {
		raw := `{"edits": [{"name": "A", "code": "first"}, {"name": "A", "code": "second"}]}`
		patches, err := ParsePatchSet(raw)
		require.NoError(t, err)
		assert.Equal(t, "second", patches["A"])
	})

	t.Run("should accept an empty edits list", func(t *testing.T) {
		patches, err := ParsePatchSet(`{"edits": []}`)
		require.NoError(t, err)
		assert.Empty(t, patches)
	})
}

func Test_ValidatePatches(t *testing.T) {
	regions := []EditRegion{
		{Name: "INIT", Kind: KindSingle},
		{Name: "CHECK", Kind: KindBlock},
	}

	t.Run("should accept patches naming scanned regions only", func(t *testing.T) {
		err := ValidatePatches(regions, PatchSet{"INIT": "x"}, nil)
		assert.NoError(t, err)
	})

	t.Run("should reject a patch for an unknown region", func(t *testing.T) {
		err := ValidatePatches(regions, PatchSet{"GHOST": "x"}, nil)
		var unknown *UnknownRegionError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "GHOST", unknown.Name)
	})

	t.Run("should report unknown regions before running validators", func(t *testing.T) {
		deny := TokenDenylist{Tokens: DefaultForbiddenTokens}
		err := ValidatePatches(regions, PatchSet{"GHOST": "$fopen"}, []Validator{deny})
		var unknown *UnknownRegionError
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("should reject each default forbidden token", func(t *testing.T) {
		deny := TokenDenylist{Tokens: DefaultForbiddenTokens}
		for _, tok := range DefaultForbiddenTokens {
			err := ValidatePatches(regions, PatchSet{"INIT": "x; " + tok + " y;"}, []Validator{deny})
			var forbidden *ForbiddenTokenError
			require.ErrorAs(t, err, &forbidden, "token %q", tok)
			assert.Equal(t, tok, forbidden.Token)
			assert.Equal(t, "INIT", forbidden.Region)
		}
	})

	t.Run("should run custom validators against every patch", func(t *testing.T) {
		var seen []string
		v := ValidatorFunc(func(region, code string) error {
			seen = append(seen, region)
			return nil
		})
		err := ValidatePatches(regions, PatchSet{"INIT": "a", "CHECK": "b"}, []Validator{v})
		require.NoError(t, err)
		assert.Equal(t, []string{"CHECK", "INIT"}, seen) // deterministic, sorted order
	})
}

func Test_StripFence(t *testing.T) {
	t.Run("should strip a fence with a language tag", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, StripFence("```json\n{\"a\":1}\n```"))
	})

	t.Run("should strip a bare fence", func(t *testing.T) {
		assert.Equal(t, "code", StripFence("```\ncode\n```"))
	})

	t.Run("should leave unfenced text alone apart from trimming", func(t *testing.T) {
		assert.Equal(t, "plain", StripFence("  plain\n"))
	})

	t.Run("should strip only the outermost fence", func(t *testing.T) {
		got := StripFence("```\nouter ```inner``` outer\n```")
		assert.Equal(t, "outer ```inner``` outer", got)
	})
}

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyleRules(t *testing.T) {
	rules, err := ParseStyleRules([]string{
		"# comment",
		"of, -2-s => 2 TAPE COMBO",
		"",
		"crop=>CROP HOODIE",
	})
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, []string{"of", "-2-s"}, rules[0].Keywords)
	assert.Equal(t, "2 TAPE COMBO", rules[0].Style)

	for _, bad := range []string{"no arrow", "kw => ", " , => X"} {
		_, err := ParseStyleRules([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestApplyStyle_FirstRuleWins(t *testing.T) {
	rules, err := ParseStyleRulesText("crop => CROP\nhoodie, crop => HOODIE")
	require.NoError(t, err)
	assert.Equal(t, "CROP", ApplyStyle("Crop-Hoodie-XL", rules))
	assert.Equal(t, "HOODIE", ApplyStyle("hoodie-1", rules))
	assert.Equal(t, "plain-sku", ApplyStyle(" plain-sku ", rules))
}

func TestDetectColor_PrefersLongest(t *testing.T) {
	colors := []string{"BLUE", "NAVY", "NAVY BLUE", "RED"}
	assert.Equal(t, "NAVY BLUE", DetectColor("kurti_navy-blue_xl", colors))
	assert.Equal(t, "RED", DetectColor("Dress RED", colors))
	assert.Equal(t, "", DetectColor("plain", colors))
}

func TestNormalizeCourier(t *testing.T) {
	aliases := map[string]string{"pocketship": "Valmo", "delhivery": "Delhivery", "delhivery surface": "Delhivery"}
	assert.Equal(t, "Valmo", NormalizeCourier("PocketShip", aliases))
	assert.Equal(t, "Valmo", NormalizeCourier("PocketShip Express", aliases))
	assert.Equal(t, "Delhivery", NormalizeCourier(" Delhivery Surface ", aliases))
	assert.Equal(t, "Shadowfax", NormalizeCourier(" Shadowfax ", aliases))
}

func TestNormalizeCourier_EqualLengthTieIsStable(t *testing.T) {
	aliases := map[string]string{"ekart": "Ekart", "xpress": "Xpressbees", "xbees": "Xpressbees", "ecom": "Ecom Express"}
	for i := 0; i < 50; i++ {
		require.Equal(t, "Ekart", NormalizeCourier("Ekart Xbees Hub", aliases), "ekart sorts before xbees")
	}
	assert.Equal(t, "Xpressbees", NormalizeCourier("xpress ekart", aliases), "longer alias beats the tie")
}

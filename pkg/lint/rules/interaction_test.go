package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLI02_InputPurpose(t *testing.T) {
	runCases(t, "LI02", []ruleCase{
		{"email without autocomplete", `<input type="email" name="email">`, 1},
		{"email with autocomplete", `<input type="email" name="email" autocomplete="email">`, 0},
		{"default type, id match", `<input id="user_phone">`, 1},
		{"unrelated field", `<input name="search">`, 0},
		{"checkbox is not text entry", `<input type="checkbox" name="email">`, 0},
		{"upper-case type", `<input type="PASSWORD" name="pwd">`, 1},
	})

	got := runRule(t, `<input type="text" name="FirstName">`, "LI02")
	require.Len(t, got, 1)
	assert.Equal(t, `Personal data field "firstname" has no autocomplete attribute`, got[0].Message)
}

func TestLI02_PersonalFieldsOption(t *testing.T) {
	opts := map[string]any{"personal_fields": []string{"nickname"}}
	assert.Len(t, runRuleWith(t, `<input name="nickname">`, "LI02", opts), 1)
	assert.Empty(t, runRuleWith(t, `<input name="email">`, "LI02", opts))
}

func TestLI03_Labels(t *testing.T) {
	runCases(t, "LI03", []ruleCase{
		{"unlabelled input", `<input type="text" id="city">`, 1},
		{"label for", `<label for="city">City</label><input type="text" id="city">`, 0},
		{"label for other id", `<label for="town">Town</label><input type="text" id="city">`, 1},
		{"wrapping label", `<label>City <input type="text"></label>`, 0},
		{"aria-label", `<input aria-label="City">`, 0},
		{"title", `<textarea title="Comment"></textarea>`, 0},
		{"placeholder on input", `<input placeholder="City">`, 0},
		{"placeholder on textarea", `<textarea placeholder="Comment"></textarea>`, 1},
		{"select", `<select><option>a</option></select>`, 1},
		{"hidden and submit", `<input type="hidden" name="t"><input type="submit" value="Go">`, 0},
	})
}

func TestIC01_NameRoleValue(t *testing.T) {
	runCases(t, "IC01", []ruleCase{
		{"empty button", `<button></button>`, 1},
		{"text button", `<button>Save</button>`, 0},
		{"aria-label", `<button aria-label="Close"></button>`, 0},
		{"title", `<button title="Close"></button>`, 0},
		{"image with alt", `<button><img src="x.svg" alt="Close"></button>`, 0},
		{"image without alt", `<button><img src="x.svg"></button>`, 1},
		{"labelledby", `<button aria-labelledby="lbl"></button>`, 0},
		{"role button without name", `<div role="button"></div>`, 1},
		{"role button with text", `<span role="button">Go</span>`, 0},
	})

	got := runRule(t, `<div role="BUTTON"></div>`, "IC01")
	require.Len(t, got, 1)
	assert.Equal(t, `<div> with role="button" has no accessible name`, got[0].Message)
}

func TestIC02_LinkPurpose(t *testing.T) {
	runCases(t, "IC02", []ruleCase{
		{"no href", `<a>Click</a>`, 1},
		{"href and text", `<a href="/">Home</a>`, 0},
		{"empty link", `<a href="/"></a>`, 1},
		{"image with alt", `<a href="/"><img src="h.png" alt="Home"></a>`, 0},
		{"image with blank alt", `<a href="/"><img src="h.png" alt=" "></a>`, 1},
		{"aria-label", `<a href="/" aria-label="Home"></a>`, 0},
	})

	got := runRule(t, "<p>x</p>\n<a href=\"/cart\"></a>", "IC02")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Line)
}

func TestIC03_FocusOrder(t *testing.T) {
	runCases(t, "IC03", []ruleCase{
		{"zero", `<div tabindex="0">x</div>`, 0},
		{"positive", `<input tabindex="3">`, 1},
		{"malformed", `<div tabindex="abc">x</div>`, 1},
		{"negative on link", `<a href="/" tabindex="-1">x</a>`, 1},
		{"negative on button", `<button tabindex="-1">x</button>`, 1},
		{"negative on div", `<div tabindex="-1">x</div>`, 0},
		{"negative on anchor without href", `<a tabindex="-1">x</a>`, 0},
		{"padded value", `<div tabindex=" 0 ">x</div>`, 0},
	})

	got := runRule(t, `<input tabindex="5">`, "IC03")
	require.Len(t, got, 1)
	assert.Equal(t, "Element has a positive tabindex=5", got[0].Message)
}

func TestIC04_FocusVisible(t *testing.T) {
	runCases(t, "IC04", []ruleCase{
		{"outline none", `<a href="/" style="outline: none">x</a>`, 1},
		{"outline zero upper-case", `<a href="/" style="OUTLINE : 0">x</a>`, 1},
		{"other style", `<a href="/" style="color: red">x</a>`, 0},
		{"outline kept", `<a href="/" style="outline: 2px solid">x</a>`, 0},
	})
}

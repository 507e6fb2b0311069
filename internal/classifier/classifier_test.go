package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corpagent/adgm-compliance-api/internal/models"
	"github.com/corpagent/adgm-compliance-api/internal/rules"
)

func TestClassify(t *testing.T) {
	c := New(rules.Default())

	cases := []struct {
		name     string
		text     string
		filename string
		want     models.DocumentType
	}{
		{
			name: "articles of association",
			text: "These Articles of Association set out the share capital of the company. " +
				"The board of directors shall call a general meeting each year. " +
				"The transfer of shares requires approval.",
			want: models.TypeArticlesOfAssociation,
		},
		{
			name: "memorandum",
			text: "This Memorandum of Association states the objects of the company. " +
				"Each subscriber agrees to take at least one share of the authorised share capital.",
			want: models.TypeMemorandumOfAssociation,
		},
		{
			name: "ubo declaration",
			text: "Declaration of beneficial ownership: the ultimate beneficial owner holds " +
				"a 40% ownership interest in the entity. The beneficial owner is a natural person.",
			want: models.TypeUBODeclaration,
		},
		{
			name: "board resolution",
			text: "Board Resolution of the company. A quorum being present, it was resolved " +
				"that the chairman execute the agreement. Further resolved that the filing proceed.",
			want: models.TypeBoardResolution,
		},
		{
			name: "employment contract",
			text: "This employment contract is between the employer and the employee. " +
				"Remuneration is payable monthly. The probation period is three months and the notice period is one month.",
			want: models.TypeEmploymentContract,
		},
		{
			name: "unknown for unrelated text",
			text: "The weather in the mountains was pleasant and the hiking trail was long.",
			want: models.TypeUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, confidence := c.Classify(tc.text, tc.filename)
			assert.Equal(t, tc.want, got)
			if tc.want == models.TypeUnknown {
				assert.Zero(t, confidence)
			} else {
				assert.Greater(t, confidence, 0.0)
				assert.LessOrEqual(t, confidence, 1.0)
			}
		})
	}
}

func TestClassifyFilenameHintTipsTheBalance(t *testing.T) {
	c := New(rules.Default())

	// One keyword hit is below the minimum threshold on its own.
	text := "The beneficial owner is listed below."

	got, _ := c.Classify(text, "")
	assert.Equal(t, models.TypeUnknown, got)

	got, confidence := c.Classify(text, "ubo_declaration_form.docx")
	assert.Equal(t, models.TypeUBODeclaration, got)
	assert.Greater(t, confidence, 0.0)
}

func TestClassifyEmptyTextIsUnknown(t *testing.T) {
	c := New(rules.Default())

	got, confidence := c.Classify("", "")

	assert.Equal(t, models.TypeUnknown, got)
	assert.Zero(t, confidence)
}

func TestClassifyNeverReturnsTypeOutsideEnum(t *testing.T) {
	c := New(rules.Default())

	known := map[models.DocumentType]bool{
		models.TypeArticlesOfAssociation:    true,
		models.TypeMemorandumOfAssociation:  true,
		models.TypeUBODeclaration:           true,
		models.TypeEmploymentContract:       true,
		models.TypeBoardResolution:          true,
		models.TypeIncorporationApplication: true,
		models.TypeRegisterOfMembers:        true,
		models.TypeRegisterOfDirectors:      true,
		models.TypeShareholderResolution:    true,
		models.TypeUnknown:                  true,
	}

	for _, text := range []string{"", "x", "share capital share capital", "register of members entry"} {
		got, _ := c.Classify(text, "")
		assert.True(t, known[got], "unexpected label %q for %q", got, text)
	}
}

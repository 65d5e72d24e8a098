package questions

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	bank := Default()

	require.Equal(t, 10, bank.Size())

	// Порядок выдачи фиксирован: q_1..q_10
	for i, q := range bank.All() {
		assert.Equal(t, fmt.Sprintf("q_%d", i+1), q.ID)
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Keywords)
	}

	first, ok := bank.At(0)
	require.True(t, ok)
	assert.Equal(t, "q_1", first.ID)
	assert.Equal(t, CategoryTechnical, first.Category)

	q5, ok := bank.Find("q_5")
	require.True(t, ok)
	assert.Equal(t, CategorySoft, q5.Category)
	assert.Contains(t, q5.Keywords, "команда")
}

func TestBankAtOutOfRange(t *testing.T) {
	bank := Default()

	_, ok := bank.At(10)
	assert.False(t, ok)
	_, ok = bank.At(-1)
	assert.False(t, ok)
}

func TestBankFindUnknown(t *testing.T) {
	bank := Default()

	_, ok := bank.Find("q_99")
	assert.False(t, ok)
}

func TestNewBankValidation(t *testing.T) {
	valid := Question{
		ID:       "q_1",
		Text:     "Расскажите о себе",
		Category: CategoryTechnical,
		Keywords: []string{"опыт"},
	}

	tests := []struct {
		name      string
		questions []Question
		wantErr   bool
	}{
		{"валидный банк", []Question{valid}, false},
		{"пустой банк", nil, true},
		{"пустой id", []Question{{Text: "t", Category: CategorySoft, Keywords: []string{"k"}}}, true},
		{"пустой текст", []Question{{ID: "q_1", Category: CategorySoft, Keywords: []string{"k"}}}, true},
		{"неизвестный тип", []Question{{ID: "q_1", Text: "t", Category: "weird", Keywords: []string{"k"}}}, true},
		{"без ключевых слов", []Question{{ID: "q_1", Text: "t", Category: CategorySoft}}, true},
		{"дублирующийся id", []Question{valid, valid}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank, err := NewBank(tt.questions)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, bank)
			} else {
				require.NoError(t, err)
				assert.Equal(t, len(tt.questions), bank.Size())
			}
		})
	}
}

func TestBankAllReturnsCopy(t *testing.T) {
	bank := Default()

	all := bank.All()
	all[0].ID = "mutated"

	first, ok := bank.At(0)
	require.True(t, ok)
	assert.Equal(t, "q_1", first.ID)
}

func TestFallbackQuestion(t *testing.T) {
	q := Fallback(11)

	assert.Equal(t, "fallback_q_11", q.ID)
	assert.Equal(t, CategorySoft, q.Category)
	assert.NotEmpty(t, q.Text)
	assert.NotEmpty(t, q.Keywords)
}

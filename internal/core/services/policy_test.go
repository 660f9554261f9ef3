package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

func TestVerifyPolicy_Defaults(t *testing.T) {
	status, err := NewPolicyService(nil).VerifyPolicy(context.Background())
	require.NoError(t, err)

	assert.True(t, status.SystemPromptActive)
	assert.True(t, status.RealityFilterEnforced)
	assert.True(t, status.PDFFirstMode)
	assert.Equal(t, []string{
		"FOOD_MENU_PDF.pdf",
		"Allergies PDF.pdf",
		"LRG_Reverse_indx.pdf",
		"STD_PDF_7_9_20.pdf",
		"RSV_Wine 7_9_20.pdf",
		"BTG_list_PDF.pdf",
		"Spir_PDF.pdf",
	}, status.ReferenceDocuments)
	assert.Equal(t, domain.DefaultDirective, status.Directive)
}

func TestVerifyPolicy_CustomPrompts(t *testing.T) {
	prompts := fakePrompts{
		driven.PromptPolicy:      "Answer from documents only.\n- house_rules.pdf\n",
		driven.PromptEnforcement: "Cite the handbook.",
	}

	status, err := NewPolicyService(prompts).VerifyPolicy(context.Background())
	require.NoError(t, err)

	assert.False(t, status.PDFFirstMode)
	assert.Equal(t, []string{"house_rules.pdf"}, status.ReferenceDocuments)
	assert.Equal(t, "Cite the handbook.", status.Directive)
}

func TestVerifyPolicy_EmptyPolicy(t *testing.T) {
	prompts := fakePrompts{driven.PromptPolicy: "  ", driven.PromptEnforcement: ""}

	status, err := NewPolicyService(prompts).VerifyPolicy(context.Background())
	require.NoError(t, err)

	assert.False(t, status.SystemPromptActive)
	assert.False(t, status.RealityFilterEnforced)
	assert.Empty(t, status.ReferenceDocuments)
}

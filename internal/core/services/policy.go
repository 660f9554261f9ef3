package services

import (
	"context"
	"strings"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
)

// Ensure PolicyService implements the interface.
var _ driving.PolicyService = (*PolicyService)(nil)

const (
	pdfFirstMarker    = "PDF-FIRST"
	enforcementOpen   = "[REALITY FILTER ENFORCED:"
	enforcementClose  = "]"
	listBulletCutset  = "○●•-* \t"
	referenceDocument = ".pdf"
)

// PolicyService inspects the active policy prompts.
type PolicyService struct {
	prompts driven.PromptStore
}

// NewPolicyService creates a new policy service. prompts may be nil, in
// which case the built-in policy is reported.
func NewPolicyService(prompts driven.PromptStore) *PolicyService {
	return &PolicyService{prompts: prompts}
}

// VerifyPolicy reports whether the policy and reality filter are active and
// which reference documents the policy names.
func (s *PolicyService) VerifyPolicy(_ context.Context) (*domain.PolicyStatus, error) {
	policy := loadPrompt(s.prompts, driven.PromptPolicy, domain.DefaultPolicyPrompt)
	enforcement := loadPrompt(s.prompts, driven.PromptEnforcement, domain.DefaultEnforcementPrompt)

	directive := strings.TrimSpace(enforcement)
	directive = strings.TrimPrefix(directive, enforcementOpen)
	directive = strings.TrimSuffix(directive, enforcementClose)

	return &domain.PolicyStatus{
		SystemPromptActive:    strings.TrimSpace(policy) != "",
		RealityFilterEnforced: strings.TrimSpace(enforcement) != "",
		PDFFirstMode:          strings.Contains(policy, pdfFirstMarker),
		ReferenceDocuments:    referenceDocuments(policy),
		Directive:             strings.TrimSpace(directive),
	}, nil
}

// referenceDocuments returns the PDF names listed in the policy, one per
// line, in first-seen order.
func referenceDocuments(policy string) []string {
	seen := make(map[string]bool)
	docs := []string{}
	for _, line := range strings.Split(policy, "\n") {
		name := strings.Trim(line, listBulletCutset)
		if !strings.HasSuffix(strings.ToLower(name), referenceDocument) || seen[name] {
			continue
		}
		seen[name] = true
		docs = append(docs, name)
	}
	return docs
}

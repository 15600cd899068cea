package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func docSet(kinds ...DocumentKind) DocumentSet {
	docs := DocumentSet{}
	for _, k := range kinds {
		docs[k] = HospitalDocument{Ref: "ref-" + string(k), UploadedAt: time.Now()}
	}
	return docs
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from HospitalStatus
		to   HospitalStatus
		want bool
	}{
		{StatusPending, StatusUnderReview, true},
		{StatusPending, StatusApproved, false},
		{StatusPending, StatusSuspended, false},
		{StatusPending, StatusRejected, false},
		{StatusUnderReview, StatusApproved, true},
		{StatusUnderReview, StatusRejected, true},
		{StatusUnderReview, StatusSuspended, true},
		{StatusUnderReview, StatusPending, true},
		{StatusApproved, StatusSuspended, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusSuspended, StatusApproved, true},
		{StatusSuspended, StatusUnderReview, true},
		{StatusSuspended, StatusPending, false},
		{StatusRejected, StatusUnderReview, true},
		{StatusRejected, StatusPending, true},
		{StatusRejected, StatusApproved, false},
		// self-transitions are always legal (idempotent replay)
		{StatusPending, StatusPending, true},
		{StatusApproved, StatusApproved, true},
		{StatusRejected, StatusRejected, true},
		// malformed values
		{HospitalStatus("bogus"), StatusApproved, false},
		{StatusPending, HospitalStatus("bogus"), false},
	}

	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestEveryStateIsRevisitable(t *testing.T) {
	all := []HospitalStatus{StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusSuspended}
	for _, target := range all {
		reachable := false
		for _, from := range all {
			if from != target && CanTransition(from, target) {
				reachable = true
				break
			}
		}
		assert.True(t, reachable, "state %s is not reachable from any other state", target)
	}
}

func TestRecomputeVerification_MissingDocuments(t *testing.T) {
	h := &Hospital{}
	h.Documents = datatypes.NewJSONType(docSet(
		DocRegistrationCertificate,
		DocHealthDeptLicense,
		DocProofOfOwnership,
		DocPractitionersList,
	))
	h.RecomputeVerification()
	assert.Equal(t, TierUnverified, h.VerificationTier)
}

func TestRecomputeVerification_AllRequired(t *testing.T) {
	h := &Hospital{}
	h.Documents = datatypes.NewJSONType(docSet(RequiredDocumentKinds...))
	h.RecomputeVerification()
	assert.Equal(t, TierPartiallyVerified, h.VerificationTier)

	h.AdminVerified = true
	h.RecomputeVerification()
	assert.Equal(t, TierFullyVerified, h.VerificationTier)
}

func TestRecomputeVerification_EmptyRefDoesNotCount(t *testing.T) {
	docs := docSet(RequiredDocumentKinds...)
	docs[DocTaxRegistration] = HospitalDocument{Ref: ""}

	h := &Hospital{}
	h.Documents = datatypes.NewJSONType(docs)
	h.RecomputeVerification()
	assert.Equal(t, TierUnverified, h.VerificationTier)
}

func TestMergeDocuments_RecomputesTier(t *testing.T) {
	h := &Hospital{}
	h.MergeDocuments(docSet(
		DocRegistrationCertificate,
		DocHealthDeptLicense,
		DocProofOfOwnership,
		DocPractitionersList,
	))
	assert.Equal(t, TierUnverified, h.VerificationTier)

	h.MergeDocuments(docSet(DocTaxRegistration, DocDataPrivacyPolicy))
	assert.Equal(t, TierPartiallyVerified, h.VerificationTier)
	assert.Len(t, h.Documents.Data(), 6)
}

func TestMergeDocuments_OrderIndependent(t *testing.T) {
	a := &Hospital{}
	a.MergeDocuments(docSet(DocTaxRegistration, DocDataPrivacyPolicy))
	a.MergeDocuments(docSet(
		DocRegistrationCertificate,
		DocHealthDeptLicense,
		DocProofOfOwnership,
		DocPractitionersList,
	))

	b := &Hospital{}
	b.MergeDocuments(docSet(RequiredDocumentKinds...))

	assert.Equal(t, b.VerificationTier, a.VerificationTier)
}

func TestAppendNote_AppendOnly(t *testing.T) {
	h := &Hospital{}
	author := uuid.New()

	h.AppendNote("first review pass", author, time.Now())
	h.AppendNote("second review pass", author, time.Now())

	notes := h.Notes.Data()
	assert.Len(t, notes, 2)
	assert.Equal(t, "first review pass", notes[0].Text)
	assert.Equal(t, "second review pass", notes[1].Text)
	assert.Equal(t, author, notes[1].AuthorID)
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"network-match/internal/domain"
	"network-match/internal/service"
)

const snapshotJSON = `{
  "reference_year": 2026,
  "members": [
    {"id": "s1", "name": "Sara", "role": "student", "affiliation": "CSE", "skills": ["Go", "SQL"]},
    {"id": "a1", "name": "Ana", "role": "alumni", "affiliation": "cse", "skills": ["golang", "postgres"], "headline": "Backend engineer", "graduation_year": 2020},
    {"id": "f1", "role": "faculty", "affiliation": "EEE", "skills": []},
    {"id": "s2", "name": "Leo", "role": "student", "affiliation": "CSE", "skills": ["sql"], "bio": "hi"},
    {"id": "c1", "role": "alumni", "affiliation": "CSE", "skills": ["Go", "SQL"]}
  ],
  "relationships": [
    {"member_a": "c1", "member_b": "s1", "status": "accepted"}
  ],
  "signals": {
    "a1": {"authored_content_count": 2, "accepted_relationship_count": 3},
    "s2": {"authored_content_count": 4, "accepted_relationship_count": 1}
  }
}`

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "net.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRecommendFromSnapshot(t *testing.T) {
	snap, err := loadSnapshot(writeSnapshot(t))
	require.NoError(t, err)

	out, err := recommendFromSnapshot(snap, "s1", 10, false)
	require.NoError(t, err)

	assert.Equal(t, "connection-matching", out.Algorithm)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "s2", out.Results[0].CandidateID)
	assert.Equal(t, 67, out.Results[0].Score)
	assert.Equal(t, "a1", out.Results[1].CandidateID)
	assert.Equal(t, 60, out.Results[1].Score)
	assert.Empty(t, out.Message)
}

func TestRecommendFromSnapshot_Mentors(t *testing.T) {
	snap, err := loadSnapshot(writeSnapshot(t))
	require.NoError(t, err)

	out, err := recommendFromSnapshot(snap, "s1", 10, true)
	require.NoError(t, err)

	assert.Equal(t, "mentor-matching", out.Algorithm)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "a1", out.Results[0].CandidateID)
	assert.Contains(t, out.Results[0].Explanation, "6 years of industry experience")
}

func TestRecommendFromSnapshot_UnknownSubject(t *testing.T) {
	snap, err := loadSnapshot(writeSnapshot(t))
	require.NoError(t, err)

	_, err = recommendFromSnapshot(snap, "nobody", 10, false)
	assert.Error(t, err)
}

func TestRecommendCommand_Table(t *testing.T) {
	path := writeSnapshot(t)

	out, err := execute(t, "recommend", "--snapshot", path, "--subject", "s1", "--limit", "10", "--mentors=false", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "MEMBER")
	assert.Contains(t, out, "Leo")
	assert.Contains(t, out, "Shared expertise: SQL • Same department (CSE)")
	assert.NotContains(t, out, "c1")
}

func TestRecommendCommand_JSON(t *testing.T) {
	path := writeSnapshot(t)

	out, err := execute(t, "recommend", "--snapshot", path, "--subject", "s2", "--limit", "1", "--mentors=false", "-o", "json")
	require.NoError(t, err)

	var decoded recommendOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1, decoded.ResultCount)
	assert.Equal(t, domain.EmptyReasonNone, decoded.EmptyReason)
}

func TestRecommendCommand_EmptyMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solo.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"members":[{"id":"s1","role":"student","skills":[]}]}`), 0o600))

	out, err := execute(t, "recommend", "--snapshot", path, "--subject", "s1", "--limit", "10", "--mentors=false", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, string(domain.EmptyReasonNoOtherMembers))
	assert.Contains(t, out, "No other users found in the system")
}

func TestRecommendCommand_MentorEmptyMessages(t *testing.T) {
	t.Run("no alumni in the snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "students.json")
		body := `{"members":[{"id":"s1","role":"student","skills":["go"]},{"id":"s2","role":"student","skills":["go"]},{"id":"f1","role":"faculty"}]}`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		out, err := execute(t, "recommend", "--snapshot", path, "--subject", "s1", "--limit", "10", "--mentors=true", "-o", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "NO_OTHER_MEMBERS: No alumni found in the system")
	})

	t.Run("every alumnus already paired", func(t *testing.T) {
		snap, err := loadSnapshot(writeSnapshot(t))
		require.NoError(t, err)
		snap.Relationships = append(snap.Relationships, domain.RelationshipPair{MemberA: "s1", MemberB: "a1", Status: domain.RelationshipPending})

		out, err := recommendFromSnapshot(snap, "s1", 10, true)
		require.NoError(t, err)
		assert.Equal(t, domain.EmptyReasonAllConnected, out.EmptyReason)
		assert.Equal(t, "You are already connected with all available alumni", out.Message)
	})
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token", "--member", "s1", "--role", "student", "--secret", "local-secret", "--issuer", "network-match", "--ttl", "5m")
	require.NoError(t, err)

	tokens := service.NewTokenService("local-secret", "network-match", time.Minute)
	claims, err := tokens.ParseAccessToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "s1", claims.MemberID)
	assert.Equal(t, domain.RoleStudent, claims.Role)
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	_, err := execute(t, "token", "--member", "s1", "--secret", "")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "matchctl 1.2.3")
}

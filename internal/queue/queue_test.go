package queue

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/model"
)

func TestNewAuditEvent(t *testing.T) {
	uid, mid, eid := uint64(3), uint64(2), uint64(40)
	desc, ip := "Acte généré", "10.0.0.4"
	e := &model.AuditLog{
		ID: 9, UserID: &uid, MairieID: &mid, EntityID: &eid,
		Action: model.ActionCreate, EntityType: model.EntityActe,
		Description: &desc, IPAddress: &ip,
		CreatedAt: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC),
	}
	ev := NewAuditEvent(e, "Firefox", "Linux")
	assert.Equal(t, "CREATE", ev.Action)
	assert.Equal(t, "ActeMariage", ev.EntityType)
	assert.Equal(t, "2024-06-01T08:30:00Z", ev.RecordedAt)
	assert.Equal(t, "10.0.0.4", ev.IPAddress)
	assert.Equal(t, "Firefox", ev.Browser)
}

func TestWriteLine(t *testing.T) {
	eid := uint64(40)
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, AuditEvent{
		AuditID: 9, Action: "VALIDATE", EntityType: "Mariage", EntityID: &eid,
		RecordedAt: "2024-06-01T08:30:00Z", Description: "Mariage validé",
	}))
	assert.Equal(t,
		"[2024-06-01T08:30:00Z] VALIDATE Mariage | audit_id=9 | entity_id=40 | user_id=- | mairie_id=- | ip=- | client=\"-/-\" | Mariage validé\n",
		buf.String())
}

func TestAppendEvent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	body, err := json.Marshal(AuditEvent{AuditID: 1, Action: "LOGIN", EntityType: "User", RecordedAt: "2024-01-01T00:00:00Z"})
	require.NoError(t, err)

	require.NoError(t, appendEvent(dir, body))
	require.NoError(t, appendEvent(dir, body))

	raw, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(raw, []byte("\n")))

	assert.Error(t, appendEvent(dir, []byte("{not json")))
}

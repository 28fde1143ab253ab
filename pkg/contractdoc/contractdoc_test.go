package contractdoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVND(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 VND"},
		{999, "999 VND"},
		{1000, "1.000 VND"},
		{3000000, "3.000.000 VND"},
		{-45000, "-45.000 VND"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatVND(tt.in))
	}
}

func TestRenderer_Render(t *testing.T) {
	out, err := NewRenderer().Render(Lease{
		AgreementID: "A-1",
		TenantName:  "Linh <script>",
		RoomTitle:   "Room 12",
		StartDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 3000000,
		Deposit:     3000000,
		Fees:        []Fee{{Name: "Parking", Amount: 100000}},
	})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "01/09/2025")
	assert.Contains(t, html, "3.000.000 VND")
	assert.Contains(t, html, "Parking")
	assert.NotContains(t, html, "<script>")
}

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:3000")

	location, err := store.Save(context.Background(), "agreement/1.pdf", []byte("signed"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/contracts/agreement_1.pdf", location)

	content, err := os.ReadFile(filepath.Join(dir, "contracts", "agreement_1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "signed", string(content))

	_, err = store.Save(context.Background(), "agreement/1.pdf", []byte("signed again"))
	require.NoError(t, err)
}

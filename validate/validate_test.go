package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *int
		wantErr bool
	}{
		{name: "empty is nil", value: "", want: nil},
		{name: "valid", value: "16", want: intp(16)},
		{name: "zero", value: "0", want: intp(0)},
		{name: "negative rejected", value: "-4", wantErr: true},
		{name: "non numeric rejected", value: "lots", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int("ram_gb", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "ram_gb")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloat(t *testing.T) {
	got, err := Float("purchase_cost", "1299.99")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 1299.99, *got, 1e-9)

	got, err = Float("purchase_cost", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Float("purchase_cost", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase_cost must be a positive number")
}

func TestDateFormats(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"2024-03-15", "03/15/2024", "2024/03/15"} {
		got, err := Date("purchase_date", value)
		require.NoError(t, err, value)
		require.NotNil(t, got)
		assert.True(t, got.Equal(want), "parsed %s as %s", value, got)
	}

	// 斜杠日期先按 MM/DD 试
	got, err := Date("purchase_date", "03/04/2024")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 4, got.Day())

	got, err = Date("purchase_date", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Date("purchase_date", "15th March")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use YYYY-MM-DD format")
}

func TestEnum(t *testing.T) {
	require.NoError(t, Enum("status", "assigned", AssetStatuses))
	err := Enum("status", "lost", AssetStatuses)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid status "lost"`)

	// 大小写敏感：权限级别按原样比较
	require.NoError(t, Enum("access_level", "Admin", AppAccessLevels))
	require.Error(t, Enum("access_level", "admin", AppAccessLevels))
}

func TestAssetTag(t *testing.T) {
	require.NoError(t, AssetTag("LAP-0001"))
	require.Error(t, AssetTag(""))
	require.Error(t, AssetTag("AB"))
	require.Error(t, AssetTag("TAG 01"))
	require.Error(t, AssetTag("TAG_01"))
}

func TestSerialNumber(t *testing.T) {
	require.NoError(t, SerialNumber("SN-12345"))
	require.Error(t, SerialNumber("SN"))
	require.Error(t, SerialNumber(" SN-12345"))
	require.Error(t, SerialNumber("SN-12345 "))
}

func TestUsername(t *testing.T) {
	require.NoError(t, Username("john.doe"))
	require.NoError(t, Username("jane_roe"))
	require.Error(t, Username("jd"))
	require.Error(t, Username(".john"))
	require.Error(t, Username("john."))
	require.Error(t, Username("_john"))
	require.Error(t, Username("john doe"))
}

func TestEmail(t *testing.T) {
	require.NoError(t, Email("someone@example.com"))
	require.Error(t, Email(""))
	require.Error(t, Email("not-an-email"))
	require.Error(t, Email("a@b"))
}

func TestPassword(t *testing.T) {
	require.NoError(t, Password("passw0rd"))
	require.Error(t, Password("short"))
	require.Error(t, Password("onlyletters"))
	require.Error(t, Password("12345678"))
}

func TestCategoryForType(t *testing.T) {
	tests := []struct {
		assetType string
		want      string
	}{
		{"laptop", "Computing"},
		{"Laptop", "Computing"},
		{"ROUTER", "Network"},
		{"monitor", "Display"},
		{"headset", "Audio/Video"},
		{"external_ssd", "Storage"},
		{"mouse", "Peripheral"},
		{"hdmi_cable", "Connector"},
		{"toaster", "Other"},
		{"", "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryForType(tt.assetType), tt.assetType)
	}
}

func intp(n int) *int { return &n }

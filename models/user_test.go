package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifyResetToken(t *testing.T) {
	token := "abc123XYZ"
	expiry := date(2024, 6, 2)
	u := User{ResetToken: &token, ResetTokenExpiry: &expiry}

	assert.True(t, u.VerifyResetToken("abc123XYZ", date(2024, 6, 1)))
	assert.False(t, u.VerifyResetToken("abc123xyz", date(2024, 6, 1)), "token match is exact")
	assert.False(t, u.VerifyResetToken("abc123XYZ", expiry.Add(time.Hour)), "expired token")

	u.ClearResetToken()
	assert.False(t, u.VerifyResetToken("abc123XYZ", date(2024, 6, 1)))
	assert.Nil(t, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpiry)
}

func TestVerifyResetTokenMissingFields(t *testing.T) {
	var u User
	assert.False(t, u.VerifyResetToken("anything", date(2024, 6, 1)))

	token := "abc"
	u.ResetToken = &token // expiry 缺失
	assert.False(t, u.VerifyResetToken("abc", date(2024, 6, 1)))
}

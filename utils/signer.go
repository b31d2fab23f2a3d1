package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken covers every way a guest link can be bad: forged or
// corrupted signature, expiry, or a token minted for a different vendor.
// Callers render an "invalid or expired link" message and stop.
var ErrInvalidToken = errors.New("invalid or expired booking link")

// DefaultGuestLinkTTL bounds how long an emailed booking link stays valid.
const DefaultGuestLinkTTL = 24 * time.Hour

type guestClaims struct {
	VendorID uint   `json:"vendor_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// GuestSigner mints and verifies the capability tokens that let a guest
// book without an account. It is constructed once in main and handed to the
// booking controllers, so tests can run with their own key.
type GuestSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewGuestSigner(secret []byte, ttl time.Duration) *GuestSigner {
	if ttl <= 0 {
		ttl = DefaultGuestLinkTTL
	}
	return &GuestSigner{secret: secret, ttl: ttl}
}

// Sign binds a vendor and a guest email into a time-bounded token.
func (s *GuestSigner) Sign(vendorID uint, email string) (string, error) {
	claims := guestClaims{
		VendorID: vendorID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign guest token: %w", err)
	}
	return signed, nil
}

// Unsign verifies the token and returns the embedded vendor and email.
func (s *GuestSigner) Unsign(token string) (uint, string, error) {
	claims := &guestClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", ErrInvalidToken
	}
	return claims.VendorID, claims.Email, nil
}

// UnsignFor additionally checks that the token was minted for the vendor
// whose booking page it is being presented on.
func (s *GuestSigner) UnsignFor(token string, vendorID uint) (string, error) {
	tokenVendor, email, err := s.Unsign(token)
	if err != nil {
		return "", err
	}
	if tokenVendor != vendorID {
		return "", ErrInvalidToken
	}
	return email, nil
}

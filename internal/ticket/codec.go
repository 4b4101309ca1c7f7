package ticket

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/attendly/attendly/internal/domain"
)

// Payload is the plaintext embedded in a ticket token. It is ephemeral:
// minted at encode time, never persisted on its own.
type Payload struct {
	BookingID  string    `json:"bookingId"`
	EventID    string    `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IssuedAt   time.Time `json:"timestamp"`
}

func (p Payload) validate() error {
	if p.BookingID == "" || p.EventID == "" || p.Name == "" || p.Email == "" {
		return domain.ErrMalformedToken
	}
	if p.IssuedAt.IsZero() {
		return domain.ErrMalformedToken
	}
	return nil
}

// Codec seals ticket payloads into opaque tokens and opens them back up.
// Tokens are AES-256-GCM, rendered as "<nonceHex>:<cipherHex>"; the GCM tag
// rides at the tail of the ciphertext half, so any bit-flip fails decode.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives a fixed 256-bit key from secret (SHA-256) once; the codec
// holds it immutably for the life of the process.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("ticket secret must not be empty")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Encode seals payload into a transportable token. A fresh nonce is drawn per
// call, so encoding the same payload twice yields different tokens; callers
// must compare embedded booking IDs, never token strings.
func (c *Codec) Encode(payload Payload) (string, error) {
	if err := payload.validate(); err != nil {
		return "", fmt.Errorf("encode ticket: %w", err)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, plaintext, nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decode opens a token back into its payload. All failures, including failed
// decryption and unparseable payloads, surface as ErrMalformedToken.
func (c *Codec) Decode(token string) (Payload, error) {
	nonceHex, cipherHex, ok := strings.Cut(token, ":")
	if !ok {
		return Payload{}, domain.ErrMalformedToken
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return Payload{}, domain.ErrMalformedToken
	}
	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil || len(ciphertext) < c.aead.Overhead() {
		return Payload{}, domain.ErrMalformedToken
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Payload{}, domain.ErrMalformedToken
	}

	var payload Payload
	dec := json.NewDecoder(strings.NewReader(string(plaintext)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return Payload{}, domain.ErrMalformedToken
	}
	if err := payload.validate(); err != nil {
		return Payload{}, domain.ErrMalformedToken
	}
	return payload, nil
}

// Package wallet loads the resolver's Solana keypair and signs outgoing
// transactions. Key management stops here: nothing else in the engine sees
// private key material.
package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Signer wraps a Solana private key.
type Signer struct {
	key solana.PrivateKey
}

// LoadFromFile reads a keypair in the JSON byte-array format produced by
// solana-keygen.
func LoadFromFile(path string) (*Signer, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load keypair from %s: %w", path, err)
	}

	return &Signer{key: key}, nil
}

// LoadFromBase58 parses a base58-encoded private key.
func LoadFromBase58(encoded string) (*Signer, error) {
	key, err := solana.PrivateKeyFromBase58(encoded)
	if err != nil {
		return nil, fmt.Errorf("parse base58 private key: %w", err)
	}

	return &Signer{key: key}, nil
}

// NewEphemeral generates a throwaway keypair, used in tests.
func NewEphemeral() *Signer {
	return &Signer{key: solana.NewWallet().PrivateKey}
}

// PublicKey returns the signer's public key.
func (s *Signer) PublicKey() solana.PublicKey {
	return s.key.PublicKey()
}

// Sign signs a transaction for every required key this signer (and any
// extra keypairs, e.g. freshly created accounts) can cover.
func (s *Signer) Sign(tx *solana.Transaction, extra ...solana.PrivateKey) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.key.PublicKey()) {
			return &s.key
		}

		for i := range extra {
			if key.Equals(extra[i].PublicKey()) {
				return &extra[i]
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}

	return nil
}

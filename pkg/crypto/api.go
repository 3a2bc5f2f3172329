/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package crypto holds the wire types and service interfaces of the credential confidentiality layer.
// Implementations live in sub packages: envelope for the hybrid public-key envelope, dek for multi-recipient
// key wrapping and cryptoutil for key-domain conversion.
package crypto

//go:generate mockgen -destination ../internal/gomocks/crypto/mocks.gen.go -package crypto github.com/coincord/ezrah-credential-go/pkg/crypto RSAEnvelope,X25519Envelope

const (
	// RSAOAEPAESGCMAlg identifies RSA-OAEP key encapsulation with AES-GCM bulk encryption.
	RSAOAEPAESGCMAlg = "RSA-OAEP-AES-GCM"
	// X25519AESGCMAlg identifies X25519 ECDH key agreement with AES-GCM bulk encryption.
	X25519AESGCMAlg = "X25519-AES-GCM"
	// AESGCMEnc is the content encryption of every envelope.
	AESGCMEnc = "AES-GCM"
)

const (
	// DefKeySize is the size of content keys, X25519 keys and Ed25519 seeds.
	DefKeySize = 32
	// IVSize is the AES-GCM nonce size.
	IVSize = 12
	// TagSize is the AES-GCM authentication tag size. The tag is appended to the ciphertext.
	TagSize = 16
)

// RSAEnvelope encrypts for RSA public keys supplied in PEM form.
type RSAEnvelope interface {
	// EncryptRSA encrypts plaintext under a fresh content key wrapped for the recipient's RSA public key.
	EncryptRSA(plaintext []byte, recipientPublicKeyPEM string) (*EncPayload, error)
	// DecryptRSA reverses EncryptRSA with the recipient's RSA private key.
	DecryptRSA(payload *EncPayload, recipientPrivateKeyPEM string) ([]byte, error)
}

// X25519Envelope encrypts for raw 32 byte X25519 public keys.
type X25519Envelope interface {
	// EncryptX25519 encrypts plaintext to recipientPub. A nil ephemeral pair means a fresh one is generated.
	EncryptX25519(plaintext, recipientPub []byte, ephemeral *KeyPair) (*WrappedDek, error)
	// DecryptX25519 reverses EncryptX25519 with the recipient's X25519 private key.
	DecryptX25519(env *WrappedDek, recipientPriv []byte) ([]byte, error)
}

// KeyPair is a raw public/private key pair in either the Ed25519 or the X25519 domain.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// EncPayload is the RSA hybrid envelope. Binary fields are standard base64 with padding.
type EncPayload struct {
	Ciphertext            string `json:"ciphertext" mapstructure:"ciphertext"`
	IV                    string `json:"iv" mapstructure:"iv"`
	EncryptedSymmetricKey string `json:"encryptedSymmetricKey" mapstructure:"encryptedSymmetricKey"`
	Alg                   string `json:"alg" mapstructure:"alg"`
	Enc                   string `json:"enc" mapstructure:"enc"`
}

// WrappedDek is a content key sealed to one recipient with X25519 ECDH and AES-GCM.
// Ciphertext and IV are standard base64 without padding, keys are lowercase hex.
type WrappedDek struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	// the misspelled JSON name is what deployed peers read and write.
	EphemeralPublicKey string `json:"ephemeralPublickKey"`
	RecipientPubKey    string `json:"recipient_pub_key"`
	Alg                string `json:"alg"`
	Enc                string `json:"enc"`
}

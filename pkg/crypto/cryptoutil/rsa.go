/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cryptoutil

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
)

// ParseRSAPublicKeyPEM parses an RSA public key. Accepted forms are a PEM block holding SPKI or PKCS#1 DER,
// and the bare base64 DER body with the armor lines removed.
func ParseRSAPublicKeyPEM(s string) (*rsa.PublicKey, error) {
	der, err := pemBody(s)
	if err != nil {
		return nil, err
	}

	if k, e := x509.ParsePKIXPublicKey(der); e == nil {
		pub, ok := k.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: public key is %T, not RSA", api.ErrInvalidKey, k)
		}

		return pub, nil
	}

	pub, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse rsa public key: %s", api.ErrInvalidKey, err.Error())
	}

	return pub, nil
}

// ParseRSAPrivateKeyPEM parses an RSA private key held as PKCS#8 or PKCS#1 DER, armored or not.
func ParseRSAPrivateKeyPEM(s string) (*rsa.PrivateKey, error) {
	der, err := pemBody(s)
	if err != nil {
		return nil, err
	}

	if k, e := x509.ParsePKCS8PrivateKey(der); e == nil {
		priv, ok := k.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: private key is %T, not RSA", api.ErrInvalidKey, k)
		}

		return priv, nil
	}

	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse rsa private key: %s", api.ErrInvalidKey, err.Error())
	}

	return priv, nil
}

func pemBody(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty key", api.ErrInvalidKey)
	}

	if block, _ := pem.Decode([]byte(s)); block != nil {
		return block.Bytes, nil
	}

	// armor-less input: drop any stray header lines and whitespace, keep the base64 body.
	var body strings.Builder

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-----") {
			continue
		}

		body.WriteString(line)
	}

	der, err := codec.DecodeBase64(body.String())
	if err != nil {
		return nil, fmt.Errorf("%w: key is neither PEM nor base64 DER", api.ErrInvalidKey)
	}

	return der, nil
}

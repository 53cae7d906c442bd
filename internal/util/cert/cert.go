package cert

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/youmark/pkcs8"

	"github.com/bokysan/basecodec/internal/args"
)

// ServerConfig is the certificate configuration of an `https://` listener of the codec service.
// Certificates and keys are given either inline (PEM) or as files. Relative files are looked up
// next to the configuration file first.
type ServerConfig struct {
	CaCertificate             string  `json:"caCertificate"`
	CaCertificateFile         string  `json:"caCertificateFile"`
	Certificate               string  `json:"certificate"`
	CertificateFile           string  `json:"certificateFile"`
	PrivateKey                string  `json:"privateKey"`
	PrivateKeyFile            string  `json:"privateKeyFile"`
	PrivateKeyPassword        *string `json:"privateKeyPassword"`
	PrivateKeyPasswordProgram string  `json:"privateKeyPasswordProgram"`
	RequireClientCert         bool    `json:"requireClientCert"`
}

func readPem(file, inline, what string) ([]byte, error) {
	if file != "" {
		block, err := ioutil.ReadFile(findFile(file))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read %s file: %s", what, file)
		}
		return block, nil
	} else if inline != "" {
		return []byte(strings.TrimSpace(inline)), nil
	}
	return nil, nil
}

func (m *ServerConfig) GetCertificate() ([]byte, error) {
	return readPem(m.CertificateFile, m.Certificate, "certificate")
}

func (m *ServerConfig) GetCaCertificates() ([]byte, error) {
	return readPem(m.CaCertificateFile, m.CaCertificate, "ca certificate")
}

// GetPrivateKey returns the private key as an unencrypted PEM block. PKCS#8 encrypted keys and
// legacy encrypted PEM blocks are decrypted with the configured password.
func (m *ServerConfig) GetPrivateKey() ([]byte, error) {
	privateKeyPemBlock, err := readPem(m.PrivateKeyFile, m.PrivateKey, "private key")
	if err != nil || len(privateKeyPemBlock) == 0 {
		return privateKeyPemBlock, err
	}

	block, _ := pem.Decode(privateKeyPemBlock)
	if block == nil {
		return nil, errors.Errorf("Private key is not PEM encoded")
	}

	if block.Type == "ENCRYPTED PRIVATE KEY" {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}

		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Don't know how to handle %T", key)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
	}

	if x509.IsEncryptedPEMBlock(block) {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		der, err := x509.DecryptPEMBlock(block, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
	}

	return privateKeyPemBlock, nil
}

func (m *ServerConfig) GetPrivateKeyPassword() ([]byte, error) {
	if m.PrivateKeyPassword != nil {
		return []byte(*m.PrivateKeyPassword), nil
	} else if m.PrivateKeyPasswordProgram != "" {
		cmd := exec.Command("sh", "-c", m.PrivateKeyPasswordProgram)
		out := bytes.NewBuffer([]byte{})
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "Failed executing %s", m.PrivateKeyPasswordProgram)
		}
		return bytes.TrimSpace(out.Bytes()), nil
	}
	return nil, errors.Errorf("Private key is encrypted and no password or password program defined!")
}

// GetTlsConfig builds the TLS configuration of the listener. A certificate and a private key are
// mandatory.
func (m *ServerConfig) GetTlsConfig() (*tls.Config, error) {
	log.Debug("ServerConfig.GetTlsConfig()")

	certPemBlock, err := m.GetCertificate()
	if err != nil {
		return nil, err
	}
	privateKeyPemBlock, err := m.GetPrivateKey()
	if err != nil {
		return nil, err
	}
	if len(certPemBlock) == 0 || len(privateKeyPemBlock) == 0 {
		return nil, errors.Errorf("Both certificate and private key are required for TLS")
	}

	crt, err := tls.X509KeyPair(certPemBlock, privateKeyPemBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create a X509 key pair from given data!")
	}
	conf := &tls.Config{
		Certificates: []tls.Certificate{crt},
	}

	caCert, err := m.GetCaCertificates()
	if err != nil {
		return nil, errors.Wrapf(err, "Could not load CA certificates")
	}
	if caCert != nil {
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
			return nil, errors.Errorf("Could not parse CA certificates")
		}
		conf.ClientCAs = caCertPool
	}

	if m.RequireClientCert {
		conf.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return conf, nil
}

// findFile will try to locate the file based on relative path of the configuration location and,
// failing that, return the provided location as is
func findFile(name string) string {
	if args.General.ConfigurationFilePath != "" {
		path := filepath.Dir(args.General.ConfigurationFilePath)
		file := filepath.Join(path, name)

		if _, err := os.Stat(file); !os.IsNotExist(err) {
			return file
		}
	}

	return name
}

package credentials

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime  = time.Hour
	expiryMargin       = 60 * time.Second
	tokenCacheKeyFmt   = "directory:token:%s"
)

// ServiceAccountKey is the subset of a service-account JSON key the token
// exchange needs.
type ServiceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

type ServiceAccountConfig struct {
	Key TokenKey
	// TokenURL overrides the token_uri found in the key.
	TokenURL string
	Scope    string
}

// TokenKey is a parsed service-account key.
type TokenKey struct {
	ClientEmail string
	TokenURI    string
	Signer      *rsa.PrivateKey
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type serviceAccountTokenSource struct {
	cfg        ServiceAccountConfig
	httpClient *http.Client
	cache      contracts.RedisRepository
	log        *zap.Logger
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	skipCache bool
}

// LoadServiceAccountKey reads and parses a service-account JSON key file.
func LoadServiceAccountKey(path string) (TokenKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TokenKey{}, exceptions.ErrCredentialKeyInvalid(err)
	}
	return ParseServiceAccountKey(raw)
}

func ParseServiceAccountKey(raw []byte) (TokenKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return TokenKey{}, exceptions.ErrCredentialKeyInvalid(err)
	}
	if strings.TrimSpace(key.ClientEmail) == "" {
		return TokenKey{}, exceptions.ErrCredentialKeyInvalid(fmt.Errorf("client_email is empty"))
	}

	block, _ := pem.Decode([]byte(key.PrivateKey))
	if block == nil {
		return TokenKey{}, exceptions.ErrCredentialKeyInvalid(fmt.Errorf("failed to decode PEM private_key"))
	}
	signer, err := parseRSAPrivateKey(block)
	if err != nil {
		return TokenKey{}, exceptions.ErrCredentialKeyInvalid(err)
	}

	return TokenKey{
		ClientEmail: key.ClientEmail,
		TokenURI:    key.TokenURI,
		Signer:      signer,
	}, nil
}

// NewServiceAccountTokenSource exchanges a signed assertion for an access token
// and keeps it until shortly before it expires. cache may be nil.
func NewServiceAccountTokenSource(cfg ServiceAccountConfig, httpClient *http.Client, cache contracts.RedisRepository, log *zap.Logger) contracts.TokenSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &serviceAccountTokenSource{
		cfg:        cfg,
		httpClient: httpClient,
		cache:      cache,
		log:        log,
		now:        time.Now,
	}
}

func (s *serviceAccountTokenSource) Token(ctx context.Context) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Before(s.expiresAt) {
		return s.token, nil
	}

	cacheKey := fmt.Sprintf(tokenCacheKeyFmt, s.cfg.Key.ClientEmail)
	if s.cache != nil && !s.skipCache {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			s.log.Warn("serviceAccountTokenSource.Token error reading shared token cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		} else if cached != "" {
			s.token = cached
			// Held briefly; the shared entry carries the real expiry.
			s.expiresAt = now.Add(expiryMargin)
			return cached, nil
		}
	}

	s.log.Info("serviceAccountTokenSource.Token exchanging assertion", zap.String(constvars.LoggingRequestIDKey, requestID))

	resp, err := s.exchange(ctx, now)
	if err != nil {
		s.log.Error("serviceAccountTokenSource.Token error exchanging assertion",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	lifetime := time.Duration(resp.ExpiresIn)*time.Second - expiryMargin
	if lifetime < 0 {
		lifetime = 0
	}
	s.token = resp.AccessToken
	s.expiresAt = now.Add(lifetime)
	s.skipCache = false

	if s.cache != nil && lifetime > 0 {
		if err := s.cache.SetString(ctx, cacheKey, resp.AccessToken, lifetime); err != nil {
			s.log.Warn("serviceAccountTokenSource.Token error writing shared token cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}
	return s.token, nil
}

// Invalidate drops the held token; the next Token call performs a fresh
// exchange instead of trusting the shared cache.
func (s *serviceAccountTokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.skipCache = true
}

func (s *serviceAccountTokenSource) tokenURL() string {
	if s.cfg.TokenURL != "" {
		return s.cfg.TokenURL
	}
	return s.cfg.Key.TokenURI
}

func (s *serviceAccountTokenSource) exchange(ctx context.Context, now time.Time) (*tokenResponse, error) {
	tokenURL := s.tokenURL()
	if tokenURL == "" {
		return nil, exceptions.ErrCredentialKeyInvalid(fmt.Errorf("no token endpoint configured"))
	}
	if s.cfg.Key.Signer == nil {
		return nil, exceptions.ErrCredentialKeyInvalid(fmt.Errorf("private key not loaded"))
	}

	claims := jwt.MapClaims{
		"iss":   s.cfg.Key.ClientEmail,
		"scope": s.cfg.Scope,
		"aud":   tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.cfg.Key.Signer)
	if err != nil {
		return nil, exceptions.ErrCredentialKeyInvalid(err)
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, exceptions.ErrTokenExchange(err, tokenURL)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrTokenExchange(err, tokenURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrTokenExchange(err, tokenURL)
	}
	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrTokenExchange(fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), tokenURL)
	}

	var out tokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, exceptions.ErrTokenExchange(err, tokenURL)
	}
	if out.AccessToken == "" {
		return nil, exceptions.ErrTokenExchange(fmt.Errorf("response carried no access_token"), tokenURL)
	}
	return &out, nil
}

func parseRSAPrivateKey(block *pem.Block) (*rsa.PrivateKey, error) {
	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS1 private key: %w", err)
		}
		return key, nil
	case "PRIVATE KEY":
		keyAny, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS8 private key: %w", err)
		}
		if rsaKey, ok := keyAny.(*rsa.PrivateKey); ok {
			return rsaKey, nil
		}
		return nil, fmt.Errorf("PKCS8 key is not RSA")
	default:
		return nil, fmt.Errorf("unsupported RSA PEM type: %s", block.Type)
	}
}

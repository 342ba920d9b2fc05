package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffgrid/backend/internal"
)

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	userID, storedHash, roleStr, err := s.repo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	role, err := ParseRole(roleStr)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(userID, role)
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	// The role is re-read from the store so a privileged role change takes
	// effect on the next refresh, not only after re-login.
	roleStr, err := s.repo.GetRoleByUserID(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	role, err := ParseRole(roleStr)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	return s.issueTokens(claims.UserID, role)
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// ResolveCaller builds the Caller for a verified user id: role from the
// store plus the Employee profile linked to the user, if any.
func (s *Service) ResolveCaller(userID string) (*Caller, error) {
	roleStr, err := s.repo.GetRoleByUserID(userID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	role, err := ParseRole(roleStr)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	employeeID, err := s.repo.GetEmployeeIDByUserID(userID)
	if err != nil {
		return nil, internal.NewStoreError("could not resolve employee profile", err)
	}

	return &Caller{UserID: userID, Role: role, EmployeeID: employeeID}, nil
}

// Register creates an EMPLOYEE-role account and logs it in.
func (s *Service) Register(dto RegisterDTO) (*AuthTokens, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, "", internal.NewInternalError("could not hash password", err)
	}

	userID, err := s.repo.CreateUser(dto.FullName, dto.Email, string(hash), string(RoleEmployee))
	if err != nil {
		return nil, "", err
	}

	tokens, err := s.issueTokens(userID, RoleEmployee)
	if err != nil {
		return nil, "", err
	}
	return &tokens, userID, nil
}

func (s *Service) issueTokens(userID string, role Role) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, role)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 24 * 7 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID string, role Role) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.AccessTokenSecret)
}

// GenerateRefreshToken creates a new refresh token
func (j *JWTTokenGenerator) GenerateRefreshToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.RefreshTokenSecret)
}

// ValidateToken parses a token against both secrets, access first.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	for _, secret := range [][]byte{j.AccessTokenSecret, j.RefreshTokenSecret} {
		claims, err := j.parseWithSecret(tokenString, secret)
		if err == nil {
			return claims, nil
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
	}
	return nil, internal.ErrInvalidToken
}

func (j *JWTTokenGenerator) parseWithSecret(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

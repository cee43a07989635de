package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/google/uuid"
    "github.com/redis/go-redis/v9"
    "golang.org/x/crypto/bcrypt"
    "gorm.io/gorm"

    "github.com/cram-school-study/pybo/internal/model"
    "github.com/cram-school-study/pybo/internal/repository"
)

var (
    ErrUsernameTaken      = errors.New("username already taken")
    ErrInvalidCredentials = errors.New("invalid username or password")
    ErrTokenRevoked       = errors.New("token revoked")
)

const blacklistKeyPrefix = "auth:blacklist:"

// TokenClaims 登录令牌负载
type TokenClaims struct {
    UserID   string `json:"uid"`
    Username string `json:"username"`
    jwt.RegisteredClaims
}

// AuthService 身份协作方：注册/登录/登出与令牌校验。
// 核心业务只消费它解析出的 current_user。
type AuthService interface {
    Register(ctx context.Context, username, email, password string) (*model.User, error)
    Login(ctx context.Context, username, password string) (string, *model.User, error)
    Logout(ctx context.Context, claims *TokenClaims) error
    Validate(ctx context.Context, token string) (*TokenClaims, error)
}

type authService struct {
    userRepo repository.UserRepository
    rdb      *redis.Client
    secret   []byte
    expire   time.Duration
}

func NewAuthService(userRepo repository.UserRepository, rdb *redis.Client, secret string, expire time.Duration) AuthService {
    if expire <= 0 {
        expire = 24 * time.Hour
    }
    return &authService{userRepo: userRepo, rdb: rdb, secret: []byte(secret), expire: expire}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
    taken, err := s.userRepo.ExistsByUsername(ctx, username)
    if err != nil {
        return nil, err
    }
    if taken {
        return nil, ErrUsernameTaken
    }
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, fmt.Errorf("hash password: %w", err)
    }
    user := &model.User{
        ID:       uuid.New().String(),
        Username: username,
        Email:    email,
        Password: string(hash),
    }
    if err := s.userRepo.Create(ctx, user); err != nil {
        return nil, err
    }
    return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
    user, err := s.userRepo.GetByUsername(ctx, username)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return "", nil, ErrInvalidCredentials
        }
        return "", nil, err
    }
    if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
        return "", nil, ErrInvalidCredentials
    }

    now := time.Now()
    claims := &TokenClaims{
        UserID:   user.ID,
        Username: user.Username,
        RegisteredClaims: jwt.RegisteredClaims{
            ID:        uuid.New().String(),
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(s.expire)),
        },
    }
    token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
    if err != nil {
        return "", nil, fmt.Errorf("sign token: %w", err)
    }
    return token, user, nil
}

// Logout 把 jti 写进 redis 黑名单，TTL 对齐令牌剩余有效期
func (s *authService) Logout(ctx context.Context, claims *TokenClaims) error {
    ttl := time.Until(claims.ExpiresAt.Time)
    if ttl <= 0 {
        return nil
    }
    return s.rdb.Set(ctx, blacklistKeyPrefix+claims.ID, "1", ttl).Err()
}

func (s *authService) Validate(ctx context.Context, token string) (*TokenClaims, error) {
    claims := &TokenClaims{}
    parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
        }
        return s.secret, nil
    })
    if err != nil || !parsed.Valid {
        return nil, ErrInvalidCredentials
    }
    n, err := s.rdb.Exists(ctx, blacklistKeyPrefix+claims.ID).Result()
    if err != nil {
        return nil, err
    }
    if n > 0 {
        return nil, ErrTokenRevoked
    }
    return claims, nil
}

package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/trainer"
)

const (
	jwtContextKey     = "trainerToken"
	contextTrainerKey = "trainer"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	TrainerID    int    `json:"trainer_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
}

func (c Claims) IsScheduler() bool { return c.Role == trainer.RoleScheduler }

func newJWTMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    jwtContextKey,
		Claims:        new(Claims),
	})
}

func GetTrainerClaims(tr trainer.Trainer, conf *core.Config, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Audience:  "Scheduler",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		TrainerID:    tr.ID,
		Name:         tr.Name,
		Email:        tr.Email,
		Role:         tr.Role,
	}
}

// authenticate checks the login credentials: unknown email is a 404, a
// deactivated account a 403 and a bad password a 400.
func authenticate(email, pwd string, svc *trainer.Service, conf *core.Config, ctx echo.Context) (*Claims, error) {
	tr, err := svc.GetByEmail(ctx.Request().Context(), email)
	if err != nil {
		if errors.Cause(err) == trainer.ErrNotFound {
			return nil, errAccountNotFound
		}
		return nil, errors.Wrap(err, "finding trainer by email")
	}
	if !tr.IsActive() {
		return nil, errAccountDeactivated
	}
	if err = tr.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	return GetTrainerClaims(tr, conf), nil
}

// GenerateToken generates a signed JWT token string representing the trainer Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(jwtContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextTrainer(ctx echo.Context, svc *trainer.Service, clms ...Claims) (trainer.Trainer, error) {
	if tr, ok := ctx.Get(contextTrainerKey).(trainer.Trainer); ok {
		return tr, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return trainer.Trainer{}, errors.Wrap(err, "getting context claims")
		}
	}

	tr, err := svc.GetByID(ctx.Request().Context(), claims.TrainerID)
	if err != nil {
		return trainer.Trainer{}, errors.Wrap(err, "finding trainer by ID")
	}
	ctx.Set(contextTrainerKey, tr)
	return tr, nil
}

func refreshToken(ctx echo.Context, svc *trainer.Service, conf *core.Config) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	tr, err := getContextTrainer(ctx, svc, claims)
	if err != nil {
		return "", errors.Wrap(err, "getting context trainer")
	}

	// check if trainer is still active
	if !tr.IsActive() {
		return "", errAccountDeactivated
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetTrainerClaims(tr, conf, claims.OrigIssuedAt)
	token, err := GenerateToken(newClaims, conf)
	return token, errors.Wrap(err, "generating token")
}

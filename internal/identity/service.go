package identity

import (
	"context"
	"fmt"
	"strings"

	"amalkitchen-be/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailGateway sends the magic-link email. The same SMTP dialer used for
// invoices satisfies it.
type MailGateway interface {
	DialAndSend(m ...*gomail.Message) error
}

type Service interface {
	Register(ctx context.Context, email, password, fullName string) (string, User, error)
	SignIn(ctx context.Context, email, password string) (string, User, error)
	CurrentUser(ctx context.Context, tokenStr string) (*User, error)
	SendMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, tokenStr string) (string, User, error)
}

type service struct {
	repo          Repository
	mail          MailGateway
	mailFrom      string
	storefrontURL string
}

func NewService(repo Repository, mail MailGateway, mailFrom, storefrontURL string) Service {
	return &service{
		repo:          repo,
		mail:          mail,
		mailFrom:      mailFrom,
		storefrontURL: storefrontURL,
	}
}

func (s *service) Register(ctx context.Context, email, password, fullName string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	p, err := s.repo.CreateProfile(ctx, email, hashed, fullName)
	if err != nil {
		log.Error("failed to create profile", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "profiles_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	u := User{ID: p.ID, Email: p.Email, Name: p.FullName, Role: RoleCustomer}
	token, err := GenerateSessionToken(u)
	if err != nil {
		log.Error("failed to generate session token", zap.Error(err))
		return "", User{}, err
	}

	log.Info("profile registered", zap.String("email", email))
	return token, u, nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Info("sign-in failed, email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, p.Password) {
		log.Info("sign-in failed, password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	u, err := s.resolveUser(ctx, p)
	if err != nil {
		return "", User{}, err
	}

	token, err := GenerateSessionToken(u)
	return token, u, err
}

func (s *service) CurrentUser(ctx context.Context, tokenStr string) (*User, error) {
	claims, err := ParseSessionToken(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &User{
		ID:     claims.UserID,
		Email:  claims.Email,
		Role:   Role(claims.Role),
		Branch: claims.Branch,
	}, nil
}

// SendMagicLink emails a passwordless sign-in link. Unknown addresses
// are reported as ErrProfileNotFound to the caller; the transport layer
// chooses whether to reveal that.
func (s *service) SendMagicLink(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx).With(zap.String("email", email))

	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	u, err := s.resolveUser(ctx, p)
	if err != nil {
		return err
	}

	token, err := GenerateMagicLinkToken(u)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", s.storefrontURL, token)
	m := gomail.NewMessage()
	m.SetHeader("From", s.mailFrom)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Sign in to Amal's Kitchen")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>Hi %s,</p><p><a href="%s">Click here to sign in</a>. The link expires in 15 minutes.</p>`,
		p.FullName, link,
	))

	if err := s.mail.DialAndSend(m); err != nil {
		log.Error("failed to send magic link", zap.Error(err))
		return err
	}

	log.Info("magic link sent")
	return nil
}

// VerifyMagicLink exchanges an emailed token for a full session.
func (s *service) VerifyMagicLink(ctx context.Context, tokenStr string) (string, User, error) {
	claims, err := VerifyMagicLinkToken(tokenStr)
	if err != nil {
		return "", User{}, ErrInvalidToken
	}

	p, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return "", User{}, err
	}

	u, err := s.resolveUser(ctx, p)
	if err != nil {
		return "", User{}, err
	}

	token, err := GenerateSessionToken(u)
	return token, u, err
}

// resolveUser attaches the staff role and branch when the profile's
// email appears in the managers table.
func (s *service) resolveUser(ctx context.Context, p *Profile) (User, error) {
	u := User{ID: p.ID, Email: p.Email, Name: p.FullName, Role: RoleCustomer}

	m, err := s.repo.ManagerByEmail(ctx, p.Email)
	if err != nil {
		return User{}, err
	}
	if m != nil {
		u.Role = m.Role
		u.Branch = m.Branch
	}
	return u, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nemukerja/internal/core/auth"
	"nemukerja/internal/core/mailer"
	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
	"nemukerja/pkg/utils"
)

// Account handles registration, login, password reset and profile access.
type Account struct {
	repos   *repo.Repos
	jwter   *auth.JWTer
	mail    mailer.Sender
	baseURL string
	logger  *zap.Logger
}

func NewAccount(repos *repo.Repos, jwter *auth.JWTer, mail mailer.Sender, baseURL string, logger *zap.Logger) *Account {
	return &Account{
		repos:   repos,
		jwter:   jwter,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.Named("account"),
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	Role        domain.Role
	Name        string // applicant full name
	Phone       string
	CompanyName string
	Description string
}

// Register creates a user and its role profile in one transaction. Only
// applicant and company self-register; admins are seeded from the CLI.
func (a *Account) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Role != domain.RoleApplicant && in.Role != domain.RoleCompany {
		return nil, fmt.Errorf("%w: role must be applicant or company", domain.ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	existing, err := a.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	user := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         in.Role,
	}
	err = a.repos.WithTx(ctx, func(tx *repo.Repos) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			if repo.IsDuplicateKey(err) {
				return domain.ErrEmailTaken
			}
			return err
		}
		switch in.Role {
		case domain.RoleApplicant:
			return tx.Applicants.Create(ctx, &domain.Applicant{
				ID:       utils.NewID(),
				UserID:   user.ID,
				FullName: in.Name,
				Phone:    in.Phone,
			})
		case domain.RoleCompany:
			return tx.Companies.Create(ctx, &domain.Company{
				ID:           utils.NewID(),
				UserID:       user.ID,
				CompanyName:  in.CompanyName,
				Description:  in.Description,
				ContactEmail: email,
				Phone:        in.Phone,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info("user registered", zap.String("role", string(in.Role)))
	return user, nil
}

// Login verifies credentials and issues an access token.
func (a *Account) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := a.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !utils.CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrBadCredentials
	}
	token, err := a.jwter.Issue(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RequestPasswordReset mails a reset link when the address is registered.
// The answer is identical either way; no account enumeration. The send is
// best-effort.
func (a *Account) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token, err := a.jwter.IssueReset(user.ID)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"To reset your password, visit:\n%s/reset-password/%s\n\nIf you did not request this, ignore this email.\nThe link expires in 30 minutes.\n",
		a.baseURL, token)
	if err := a.mail.Send(user.Email, "Password Reset Request", body); err != nil {
		a.logger.Warn("reset mail send failed", zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new hash.
func (a *Account) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	uid, err := a.jwter.ParseReset(token)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	user, err := a.repos.Users.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrTokenInvalid
	}
	return a.repos.Users.UpdatePasswordHash(ctx, user.ID, utils.HashPassword(newPassword))
}

// Me is the authenticated identity with whichever profile its role carries.
type Me struct {
	User      domain.User       `json:"user"`
	Applicant *domain.Applicant `json:"applicant,omitempty"`
	Company   *domain.Company   `json:"company,omitempty"`
}

func (a *Account) Me(ctx context.Context, actor domain.Actor) (*Me, error) {
	user, err := a.repos.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	me := &Me{User: *user}
	switch user.Role {
	case domain.RoleApplicant:
		me.Applicant, err = a.repos.Applicants.FindByUserID(ctx, user.ID)
	case domain.RoleCompany:
		me.Company, err = a.repos.Companies.FindByUserID(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}
	return me, nil
}

type ApplicantProfileInput struct {
	FullName string
	Phone    string
	Skills   string
}

func (a *Account) UpdateApplicantProfile(ctx context.Context, actor domain.Actor, in ApplicantProfileInput) (*domain.Applicant, error) {
	if actor.Role != domain.RoleApplicant {
		return nil, domain.ErrUnauthorized
	}
	prof, err := a.repos.Applicants.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, domain.ErrProfileMissing
	}
	prof.FullName = in.FullName
	prof.Phone = in.Phone
	prof.Skills = in.Skills
	if err := a.repos.Applicants.Update(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

type CompanyProfileInput struct {
	CompanyName  string
	Description  string
	ContactEmail string
	Phone        string
}

// CompanyProfile returns the acting company's profile, creating a
// placeholder on first access (kept from the original flow, where a company
// account may reach its profile page before filling anything in).
func (a *Account) CompanyProfile(ctx context.Context, actor domain.Actor) (*domain.Company, error) {
	if actor.Role != domain.RoleCompany {
		return nil, domain.ErrUnauthorized
	}
	prof, err := a.repos.Companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		prof = &domain.Company{
			ID:          utils.NewID(),
			UserID:      actor.UserID,
			CompanyName: "New Company",
		}
		if err := a.repos.Companies.Create(ctx, prof); err != nil {
			return nil, err
		}
	}
	return prof, nil
}

func (a *Account) UpdateCompanyProfile(ctx context.Context, actor domain.Actor, in CompanyProfileInput) (*domain.Company, error) {
	prof, err := a.CompanyProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	prof.CompanyName = in.CompanyName
	prof.Description = in.Description
	prof.ContactEmail = in.ContactEmail
	prof.Phone = in.Phone
	if err := a.repos.Companies.Update(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// CreateAdmin seeds an admin user. CLI-only path.
func (a *Account) CreateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := a.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}
	user := &domain.User{
		ID:           utils.NewID(),
		Email:        strings.ToLower(email),
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleAdmin,
	}
	if err := a.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

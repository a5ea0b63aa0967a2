package auth_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/application/auth"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type userRepoStub struct {
	users   map[string]*user.User
	saveErr error
	findErr error
	deleted []uuid.UUID
}

func newUserRepoStub(users ...*user.User) *userRepoStub {
	s := &userRepoStub{users: make(map[string]*user.User)}
	for _, u := range users {
		s.users[u.Email()] = u
	}
	return s
}

func (s *userRepoStub) FindByEmail(_ context.Context, email string) (*user.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.users[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) Save(_ context.Context, u *user.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.users[u.Email()] = u
	return nil
}

func (s *userRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	for email, u := range s.users {
		if u.ID() == id {
			delete(s.users, email)
		}
	}
	return nil
}

type codeRepoStub struct {
	deleted []string
}

func (s *codeRepoStub) DeleteByEmail(_ context.Context, email string) error {
	s.deleted = append(s.deleted, email)
	return nil
}

type recoveryRepoStub struct {
	grants map[string]*verification.Recovery
	saved  []*verification.Recovery
}

func newRecoveryRepoStub(grants ...*verification.Recovery) *recoveryRepoStub {
	s := &recoveryRepoStub{grants: make(map[string]*verification.Recovery)}
	for _, g := range grants {
		s.grants[g.Email()] = g
	}
	return s
}

func (s *recoveryRepoStub) FindByEmail(_ context.Context, email string) (*verification.Recovery, error) {
	g, ok := s.grants[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return g, nil
}

func (s *recoveryRepoStub) Save(_ context.Context, rec *verification.Recovery) error {
	s.grants[rec.Email()] = rec
	s.saved = append(s.saved, rec)
	return nil
}

type codeIssuerStub struct {
	failCode string
	issued   []string
}

func (s *codeIssuerStub) CreateVerificationCode(ctx context.Context, email string, _ verification.Purpose) appcore.Result[service.CodeIssuedResult] {
	if s.failCode != "" {
		return appcore.Failure[service.CodeIssuedResult](s.failCode, s.failCode)
	}
	s.issued = append(s.issued, email)
	return appcore.Success(service.CodeIssuedResult{Message: "code sent"})
}

type hasherStub struct {
	hashErr error
}

func (s *hasherStub) Hash(password string) (string, error) {
	if s.hashErr != nil {
		return "", s.hashErr
	}
	return "hashed:" + password, nil
}

func (s *hasherStub) Compare(hash *string, password string) bool {
	if hash == nil || *hash == "" {
		return false
	}
	return *hash == "hashed:"+password
}

type tokenStub struct {
	err error
}

func (s *tokenStub) Generate(u *user.User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + u.Email(), nil
}

type localizerStub struct{}

func (localizerStub) TextByID(_ context.Context, id string, params map[string]string) string {
	if len(params) == 0 {
		return id
	}
	return fmt.Sprintf("%s %v", id, params)
}

type authClientStub struct {
	name     string
	identity *auth.ProviderIdentity
	err      error
}

func (s *authClientStub) Name() string { return s.name }

func (s *authClientStub) VerifyToken(_ context.Context, _ string) (*auth.ProviderIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

type authClientsStub struct {
	clients map[string]auth.AuthClient
}

func (s *authClientsStub) Auth(name string) (auth.AuthClient, bool) {
	c, ok := s.clients[name]
	return c, ok
}

var errBoom = errors.New("boom")

func mustUser(email, username, password string) *user.User {
	u, err := user.NewUser(email, username, "hashed:"+password)
	if err != nil {
		panic(err)
	}
	return u
}

func mustThirdPartyUser(email, username string) *user.User {
	u, err := user.NewThirdPartyUser(email, username)
	if err != nil {
		panic(err)
	}
	return u
}

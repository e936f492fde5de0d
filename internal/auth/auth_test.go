package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gofiber/template/html/v2"
	"github.com/khanghh/signup/internal/form"
	"github.com/khanghh/signup/internal/mail"
	"github.com/khanghh/signup/internal/users"
	"github.com/khanghh/signup/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	registered  []users.RegisterUserOptions
	pending     map[string]bool
	cancelled   []string
	registerErr error
	approveErr  error
	authErr     error
}

func (s *fakeUserService) RegisterUser(ctx context.Context, opts users.RegisterUserOptions) (*model.PendingUser, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if s.pending[opts.Email] {
		return nil, users.ErrEmailRegistered
	}
	if s.pending == nil {
		s.pending = make(map[string]bool)
	}
	s.pending[opts.Email] = true
	s.registered = append(s.registered, opts)
	return &model.PendingUser{ID: 1, Name: opts.Name, Email: opts.Email, ActiveToken: "tok"}, nil
}

func (s *fakeUserService) ApprovePendingUser(ctx context.Context, email string, token string) (*model.User, error) {
	if s.approveErr != nil {
		return nil, s.approveErr
	}
	return &model.User{ID: 7, Email: email, EmailVerified: true}, nil
}

func (s *fakeUserService) Authenticate(ctx context.Context, email string, password string) (*model.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return &model.User{ID: 7, Email: email}, nil
}

func (s *fakeUserService) CancelPendingUser(ctx context.Context, email string) error {
	delete(s.pending, email)
	s.cancelled = append(s.cancelled, email)
	return nil
}

type recordingSender struct {
	sent []*mail.Message
	err  error
}

func (s *recordingSender) Send(message *mail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, message)
	return nil
}

func initMailTemplates(t *testing.T) {
	fs := fstest.MapFS{
		"email-verification.html": {Data: []byte(`Hi {{.name}}, open {{.verifyURL}}`)},
	}
	engine := html.NewFileSystem(http.FS(fs), ".html")
	require.NoError(t, engine.Load())
	mail.Initialize(engine, nil)
}

func registerValues() form.Values {
	return form.Values{
		form.FieldName:            "Ann",
		form.FieldEmail:           "a@b.com",
		form.FieldPassword:        "secret1",
		form.FieldConfirmPassword: "secret1",
	}
}

func TestRegistrationRegister(t *testing.T) {
	initMailTemplates(t)
	userService := &fakeUserService{}
	sender := &recordingSender{}
	svc := NewAuthService(userService, sender, "https://signup.example.com/")

	registration := svc.NewRegistration(SubmissionState{ErrorMsg: "stale"})
	require.NoError(t, registration.Register(context.Background(), registerValues()))

	assert.Equal(t, SubmissionState{}, registration.State())
	require.NotNil(t, registration.Pending())
	require.Len(t, userService.registered, 1)
	assert.Equal(t, users.RegisterUserOptions{Name: "Ann", Email: "a@b.com", Password: "secret1"}, userService.registered[0])

	require.Len(t, sender.sent, 1)
	body := sender.sent[0].Body
	assert.True(t, strings.HasPrefix(body, "Hi Ann, open https://signup.example.com/register/verify?"), body)
	link := strings.TrimPrefix(body, "Hi Ann, open ")
	parsed, err := url.Parse(strings.ReplaceAll(link, "&amp;", "&"))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", parsed.Query().Get("email"))
	assert.Equal(t, "tok", parsed.Query().Get("token"))
}

func TestRegistrationRecordsErrorMessage(t *testing.T) {
	initMailTemplates(t)

	tests := []struct {
		name    string
		userErr error
		mailErr error
		wantMsg string
	}{
		{"email taken", users.ErrEmailRegistered, nil, MsgEmailRegistered},
		{"backend down", errors.New("connection refused"), nil, MsgInternalError},
		{"mail failure", nil, errors.New("smtp: 550"), MsgVerificationMailErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(&fakeUserService{registerErr: tt.userErr}, &recordingSender{err: tt.mailErr}, "http://localhost")
			registration := svc.NewRegistration(SubmissionState{})

			err := registration.Register(context.Background(), registerValues())
			assert.Error(t, err)
			if tt.userErr != nil {
				assert.ErrorIs(t, err, tt.userErr)
			}
			assert.Equal(t, SubmissionState{ErrorMsg: tt.wantMsg}, registration.State())
			assert.Nil(t, registration.Pending())
		})
	}
}

func TestRegistrationRetryAfterMailFailure(t *testing.T) {
	initMailTemplates(t)
	userService := &fakeUserService{}
	sender := &recordingSender{err: errors.New("smtp: 421 service not available")}
	svc := NewAuthService(userService, sender, "http://localhost")

	registration := svc.NewRegistration(SubmissionState{})
	require.Error(t, registration.Register(context.Background(), registerValues()))
	assert.Equal(t, MsgVerificationMailErr, registration.State().ErrorMsg)
	assert.Equal(t, []string{"a@b.com"}, userService.cancelled)

	sender.err = nil
	registration = svc.NewRegistration(SubmissionState{})
	require.NoError(t, registration.Register(context.Background(), registerValues()))
	assert.Equal(t, SubmissionState{}, registration.State())
	assert.Len(t, userService.registered, 2)
	assert.Len(t, sender.sent, 1)
}

func TestRegistrationIsSubmittingDuringCall(t *testing.T) {
	initMailTemplates(t)
	var registration *Registration
	var seen SubmissionState
	userService := &observingUserService{onRegister: func() { seen = registration.State() }}
	svc := NewAuthService(userService, &recordingSender{}, "http://localhost")
	registration = svc.NewRegistration(SubmissionState{ErrorMsg: "old"})

	require.NoError(t, registration.Register(context.Background(), registerValues()))
	assert.Equal(t, SubmissionState{IsSubmitting: true}, seen)
	assert.False(t, registration.State().IsSubmitting)
}

type observingUserService struct {
	fakeUserService
	onRegister func()
}

func (s *observingUserService) RegisterUser(ctx context.Context, opts users.RegisterUserOptions) (*model.PendingUser, error) {
	s.onRegister()
	return s.fakeUserService.RegisterUser(ctx, opts)
}

func TestLogin(t *testing.T) {
	userService := &fakeUserService{}
	svc := NewAuthService(userService, &recordingSender{}, "http://localhost")
	values := form.Values{form.FieldEmail: "a@b.com", form.FieldPassword: "secret1"}

	login := svc.NewLogin(SubmissionState{})
	require.NoError(t, login.Login(context.Background(), values))
	assert.Equal(t, uint(7), login.User().ID)

	userService.authErr = users.ErrInvalidCredentials
	login = svc.NewLogin(SubmissionState{})
	assert.ErrorIs(t, login.Login(context.Background(), values), users.ErrInvalidCredentials)
	assert.Equal(t, MsgInvalidCredentials, login.State().ErrorMsg)
	assert.Nil(t, login.User())

	userService.authErr = users.ErrUserDisabled
	assert.Error(t, login.Login(context.Background(), values))
	assert.Equal(t, MsgUserDisabled, login.State().ErrorMsg)
}

func TestVerifyEmail(t *testing.T) {
	userService := &fakeUserService{}
	svc := NewAuthService(userService, &recordingSender{}, "http://localhost")

	user, msg, err := svc.VerifyEmail(context.Background(), "a@b.com", "tok")
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.True(t, user.EmailVerified)

	userService.approveErr = users.ErrInvalidVerificationToken
	_, msg, err = svc.VerifyEmail(context.Background(), "a@b.com", "bad")
	assert.ErrorIs(t, err, users.ErrInvalidVerificationToken)
	assert.Equal(t, MsgVerificationFailed, msg)
}

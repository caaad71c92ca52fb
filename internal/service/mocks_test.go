package service_test

import (
	"context"
	"sync"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// --- Mocks ---

type mockAuthAPI struct {
	registerResp *domain.RegisterResponse
	loginResp    *domain.LoginResponse
	sendResp     *domain.SendCodeResponse
	verifyResp   *domain.VerifyCodeResponse
	err          error
	sendErr      error
	verifyErr    error

	sent       []domain.SendCodeRequest
	verified   []domain.VerifyCodeRequest
	resetToken string
	resetBody  *domain.PasswordResetRequest
}

func (m *mockAuthAPI) Register(_ context.Context, _ *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	return m.registerResp, m.err
}

func (m *mockAuthAPI) Login(_ context.Context, _ *domain.LoginRequest) (*domain.LoginResponse, error) {
	return m.loginResp, m.err
}

func (m *mockAuthAPI) SendCode(_ context.Context, req *domain.SendCodeRequest) (*domain.SendCodeResponse, error) {
	m.sent = append(m.sent, *req)
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	if m.sendResp != nil {
		return m.sendResp, nil
	}
	return &domain.SendCodeResponse{UserID: req.UserID}, nil
}

func (m *mockAuthAPI) VerifyCode(_ context.Context, req *domain.VerifyCodeRequest) (*domain.VerifyCodeResponse, error) {
	m.verified = append(m.verified, *req)
	return m.verifyResp, m.verifyErr
}

func (m *mockAuthAPI) ResetPassword(_ context.Context, token string, req *domain.PasswordResetRequest) (*domain.MessageResponse, error) {
	m.resetToken = token
	m.resetBody = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.MessageResponse{Message: "ok"}, nil
}

type mockProfileAPI struct {
	profile  *domain.User
	getErr   error
	writeErr error
	gets     int
	created  *domain.ProfileInput
	updated  *domain.ProfileInput
}

func (m *mockProfileAPI) GetProfile(_ context.Context) (*domain.User, error) {
	m.gets++
	return m.profile, m.getErr
}

func (m *mockProfileAPI) CreateProfile(_ context.Context, in *domain.ProfileInput) (*domain.User, error) {
	m.created = in
	return userFrom(in), m.writeErr
}

func (m *mockProfileAPI) UpdateProfile(_ context.Context, in *domain.ProfileInput) (*domain.User, error) {
	m.updated = in
	return userFrom(in), m.writeErr
}

func userFrom(in *domain.ProfileInput) *domain.User {
	return &domain.User{
		ID:        1,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CPFCNPJ:   in.CPFCNPJ,
		Address:   in.Address,
		Birthdate: in.Birthdate,
		Avatar:    in.Avatar,
	}
}

type mockPayerAPI struct {
	mu      sync.Mutex
	payers  []domain.Payer
	err     error
	lists   int
	deleted []int64
}

func (m *mockPayerAPI) ListPayers(_ context.Context) ([]domain.Payer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Payer, len(m.payers))
	copy(out, m.payers)
	return out, nil
}

func (m *mockPayerAPI) GetPayer(_ context.Context, id int64) (*domain.Payer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.payers {
		if m.payers[i].ID == id {
			p := m.payers[i]
			return &p, nil
		}
	}
	return nil, &domain.ErrAPI{Status: 404, Message: "Pagador não encontrado."}
}

func (m *mockPayerAPI) CreatePayer(_ context.Context, in *domain.PayerInput) (*domain.Payer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := domain.Payer{ID: int64(len(m.payers) + 1), Name: in.Name, Email: in.Email, CPFCNPJ: in.CPFCNPJ}
	m.payers = append(m.payers, p)
	return &p, nil
}

func (m *mockPayerAPI) UpdatePayer(_ context.Context, id int64, in *domain.PayerInput) (*domain.Payer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.payers {
		if m.payers[i].ID == id {
			m.payers[i].Name = in.Name
			p := m.payers[i]
			return &p, nil
		}
	}
	return nil, &domain.ErrAPI{Status: 404, Message: "Pagador não encontrado."}
}

func (m *mockPayerAPI) DeletePayer(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return m.err
}

type mockChargeAPI struct {
	mu       sync.Mutex
	charges  []domain.Charge
	err      error
	payerIDs []int64
	created  *domain.ChargeInput
	status   domain.ChargeStatus
}

func (m *mockChargeAPI) ListCharges(_ context.Context, payerID int64) ([]domain.Charge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payerIDs = append(m.payerIDs, payerID)
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Charge, 0, len(m.charges))
	for _, c := range m.charges {
		if payerID == 0 || c.PayerID == payerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockChargeAPI) GetCharge(_ context.Context, id int64) (*domain.Charge, error) {
	for _, c := range m.charges {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, &domain.ErrAPI{Status: 404, Message: "Cobrança não encontrada."}
}

func (m *mockChargeAPI) CreateCharge(_ context.Context, in *domain.ChargeInput) (*domain.Charge, error) {
	m.created = in
	return &domain.Charge{ID: 10, PayerID: in.PayerID, Amount: in.Amount, DueDate: in.DueDate, Status: domain.ChargePending}, nil
}

func (m *mockChargeAPI) UpdateCharge(_ context.Context, id int64, in *domain.ChargeInput) (*domain.Charge, error) {
	m.created = in
	return &domain.Charge{ID: id, PayerID: in.PayerID, Amount: in.Amount, DueDate: in.DueDate}, nil
}

func (m *mockChargeAPI) SetChargeStatus(_ context.Context, id int64, status domain.ChargeStatus) (*domain.Charge, error) {
	m.status = status
	return &domain.Charge{ID: id, Status: status}, m.err
}

func (m *mockChargeAPI) DeleteCharge(_ context.Context, _ int64) error {
	return m.err
}

type mockNotificationAPI struct {
	items []domain.Notification
	err   error
}

func (m *mockNotificationAPI) ListNotifications(_ context.Context) ([]domain.Notification, error) {
	return m.items, m.err
}

// memStore is an in-memory port.SessionStore.
type memStore struct {
	token    string
	complete bool
	user     *domain.User
	pending  *domain.PendingVerification
	reset    string
	name     string
	avatar   string
}

func (s *memStore) Token(_ context.Context) (string, error) { return s.token, nil }

func (s *memStore) SaveLogin(_ context.Context, token string, complete bool, user *domain.User) error {
	s.token, s.complete, s.user = token, complete, user
	if user != nil {
		s.name, s.avatar = user.Name, user.Avatar
	}
	return nil
}

func (s *memStore) ProfileComplete(_ context.Context) (bool, error) { return s.complete, nil }

func (s *memStore) SetProfileComplete(_ context.Context, complete bool) error {
	s.complete = complete
	return nil
}

func (s *memStore) User(_ context.Context) (*domain.User, error) { return s.user, nil }

func (s *memStore) SaveUser(_ context.Context, user *domain.User) error {
	s.user = user
	return nil
}

func (s *memStore) Pending(_ context.Context) (*domain.PendingVerification, error) {
	return s.pending, nil
}

func (s *memStore) SavePending(_ context.Context, p *domain.PendingVerification) error {
	s.pending = p
	return nil
}

func (s *memStore) ClearPending(_ context.Context) error {
	s.pending = nil
	return nil
}

func (s *memStore) ResetToken(_ context.Context) (string, error) { return s.reset, nil }

func (s *memStore) SaveResetToken(_ context.Context, token string) error {
	s.reset = token
	return nil
}

func (s *memStore) ClearResetToken(_ context.Context) error {
	s.reset = ""
	return nil
}

func (s *memStore) Display(_ context.Context) (string, string, error) { return s.name, s.avatar, nil }

func (s *memStore) SaveDisplay(_ context.Context, name, avatar string) error {
	s.name, s.avatar = name, avatar
	return nil
}

func (s *memStore) ClearSession(_ context.Context) error {
	*s = memStore{}
	return nil
}

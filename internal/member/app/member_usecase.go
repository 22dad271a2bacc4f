package app

import (
	"context"
	"errors"
	"time"

	"social_chat_service/internal/member/domain"
	"social_chat_service/internal/member/repository"
	"social_chat_service/pkg/config"
	"social_chat_service/pkg/database"
	"social_chat_service/pkg/encrypt"
	errprocess "social_chat_service/pkg/err"
	"social_chat_service/pkg/logger"
	token "social_chat_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidLogin wrong contact or wrong password, the caller must not learn
// which one.
var ErrInvalidLogin = errors.New("Invalid login credentials")

// MemberUseCase 這裡封裝了對外提供的應用服務
type MemberUseCase interface {
	Register(ctx context.Context, email, password, username, phone string) (*domain.Member, error)
	// Login accepts email, username or phone as the login contact.
	Login(ctx context.Context, loginContact, loginPassword string) (*domain.Member, string, error)
	Logout(ctx context.Context, username string) (*domain.Member, error)
	SearchUsernames(ctx context.Context, query string) ([]string, error)
}

type memberUseCase struct {
	memberRepo repository.MemberRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.MemberSession]
}

// NewMemberUseCase 建立一個新的 MemberUseCase, redisRepo 可以是 nil
// (session 只存記憶體, 靠 JWT 過期)
func NewMemberUseCase(memberRepo repository.MemberRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.MemberSession],
) MemberUseCase {
	return &memberUseCase{
		memberRepo: memberRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
	}
}

// Register
func (m *memberUseCase) Register(ctx context.Context, email, password, username, phone string) (*domain.Member, error) {
	if email == "" || password == "" || username == "" || phone == "" {
		return nil, errors.New("All fields are required")
	}
	if !domain.ValidateEmail(email) {
		return nil, errors.New("Email must end with @gmail.com")
	}
	if err := encrypt.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}
	if !domain.ValidatePhone(phone) {
		return nil, errors.New("Phone number must be exactly 10 digits")
	}
	if !domain.ValidateUsername(username) {
		return nil, errors.New("Username must be between 3 and 30 characters")
	}

	// 唯一性檢查要分欄位, client 靠訊息判斷是哪個欄位撞到
	if _, err := m.memberRepo.FindByMember(ctx, domain.MemberQuery{Email: &email}); err == nil {
		return nil, errprocess.Set("Email already registered")
	}
	if _, err := m.memberRepo.FindByMember(ctx, domain.MemberQuery{Username: &username}); err == nil {
		return nil, errprocess.Set("Username already taken")
	}
	if _, err := m.memberRepo.FindByMember(ctx, domain.MemberQuery{Phone: &phone}); err == nil {
		return nil, errprocess.Set("Phone number already registered")
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		logger.Log.Errorf("password err :", err)
		return nil, err
	}

	member := domain.Member{
		MemberID:  uuid.New().String(),
		Username:  username,
		Email:     email,
		Phone:     phone,
		Password:  pw,
		Status:    domain.MemberStatusOffline,
		CreatedAt: time.Now(),
	}

	logger.Log.Info("usecase Register", zap.String("username", username))

	if err := m.memberRepo.CreateUser(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Login
func (m *memberUseCase) Login(ctx context.Context, loginContact, loginPassword string) (*domain.Member, string, error) {
	member, err := m.memberRepo.FindByLoginContact(ctx, loginContact)
	if err != nil {
		logger.Log.Error("login contact can't find!!!")
		return nil, "", ErrInvalidLogin
	}

	if !member.IsPasswordMatch(loginPassword) {
		logger.Log.Error("password can't match!!!")
		return nil, "", ErrInvalidLogin
	}

	member.Status = domain.MemberStatusOnline

	t, err := token.GenerateJWT(member.MemberID, member.Username, string(token.RoleMember), config.EnvConfig.ChatService)
	if err != nil {
		return nil, "", err
	}

	if m.redisRepo != nil {
		now := time.Now()
		session := domain.MemberSession{
			Token:        t,
			MemberID:     member.MemberID,
			CreatedAt:    now,
			LastActivity: now,
			ExpiredAt:    now.Add(m.sessionTTL),
		}
		if err := m.redisRepo.Set(ctx, member.MemberID, session, m.sessionTTL); err != nil {
			logger.Log.Errorf("store login session err :", err)
		}
	}

	if err := m.memberRepo.UpdateMemberStatus(ctx, member.MemberID, domain.MemberStatusOnline); err != nil {
		return nil, "", err
	}
	return member, t, nil
}

// Logout marks the member offline and drops the redis session.
func (m *memberUseCase) Logout(ctx context.Context, username string) (*domain.Member, error) {
	member, err := m.memberRepo.FindByMember(ctx, domain.MemberQuery{Username: &username})
	if err != nil {
		return nil, err
	}

	if m.redisRepo != nil {
		if err := m.redisRepo.Del(ctx, member.MemberID); err != nil {
			logger.Log.Errorf("drop login session err :", err)
		}
	}

	if err := m.memberRepo.UpdateMemberStatus(ctx, member.MemberID, domain.MemberStatusOffline); err != nil {
		return nil, err
	}
	member.Status = domain.MemberStatusOffline
	return member, nil
}

// SearchUsernames substring match on username, case insensitive.
func (m *memberUseCase) SearchUsernames(ctx context.Context, query string) ([]string, error) {
	members, err := m.memberRepo.SearchByUsername(ctx, query)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(members))
	for _, member := range members {
		usernames = append(usernames, member.Username)
	}
	return usernames, nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/config"
	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"
	"github.com/Leplik500/rebuilder-user-service/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testCfg() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "unit-secret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 168 * time.Hour,
			Issuer:          "user-service",
			OTPLength:       4,
			OTPTTL:          15 * time.Minute,
		},
		Limits: config.LimitsConfig{
			WeightMin: 30, WeightMax: 300,
			HeightMin: 50, HeightMax: 250,
			AgeMin: 13, AgeMax: 120,
		},
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockOTPSender, *mocks.MockCodeGenerator, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	sender := mocks.NewMockOTPSender(ctrl)
	gen := mocks.NewMockCodeGenerator(ctrl)
	svc := New(st, sender, gen, testCfg())
	return svc, st, sender, gen, ctrl
}

func testUser() *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:        uuid.New(),
		Username:  "athlete",
		Email:     "user@example.com",
		Role:      models.RoleMember,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func validRegisterInput() RegisterUserInput {
	return RegisterUserInput{
		Username:      "athlete",
		Email:         "user@example.com",
		Weight:        80,
		Height:        180,
		Age:           30,
		Gender:        "male",
		ActivityLevel: "average",
		FitnessGoal:   "weight_loss",
	}
}

func TestRequestOTP_OK(t *testing.T) {
	t.Parallel()

	svc, st, sender, gen, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().InvalidateActiveOTPs(gomock.Any(), user.ID, gomock.Any()).Return(int64(0), nil)
	gen.EXPECT().GenerateCode(4).Return("4821", nil)
	sender.EXPECT().SendOTP(gomock.Any(), "user@example.com", "4821").Return(nil)
	st.EXPECT().SaveOTP(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, otp *models.OneTimePassword) error {
			require.Equal(t, user.ID, otp.UserID)
			require.Equal(t, "4821", otp.Code)
			require.False(t, otp.Used)
			require.WithinDuration(t, time.Now().Add(15*time.Minute), otp.ExpiresAt, 2*time.Second)
			return nil
		})

	err := svc.RequestOTP(context.Background(), "user@example.com")
	require.NoError(t, err)
}

func TestRequestOTP_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc, st, sender, gen, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()

	// Хранилище всегда видит нормализованный адрес.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().InvalidateActiveOTPs(gomock.Any(), user.ID, gomock.Any()).Return(int64(1), nil)
	gen.EXPECT().GenerateCode(4).Return("0007", nil)
	sender.EXPECT().SendOTP(gomock.Any(), "user@example.com", "0007").Return(nil)
	st.EXPECT().SaveOTP(gomock.Any(), gomock.Any()).Return(nil)

	err := svc.RequestOTP(context.Background(), "  User@Example.COM ")
	require.NoError(t, err)
}

func TestRequestOTP_InvalidEmail_NoStorageCalls(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	err := svc.RequestOTP(context.Background(), "not-an-email")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidEmail)

	err = svc.RequestOTP(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRequestOTP_UserNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	err := svc.RequestOTP(context.Background(), "ghost@example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestOTP_SendFailed_OTPNotSaved(t *testing.T) {
	t.Parallel()

	svc, st, sender, gen, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()

	// SaveOTP не ожидается: упавшая отправка не оставляет кода в БД.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().InvalidateActiveOTPs(gomock.Any(), user.ID, gomock.Any()).Return(int64(0), nil)
	gen.EXPECT().GenerateCode(4).Return("1234", nil)
	sender.EXPECT().SendOTP(gomock.Any(), "user@example.com", "1234").Return(errors.New("smtp down"))

	err := svc.RequestOTP(context.Background(), "user@example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInternal)
}

func TestRequestOTP_InvalidateError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().InvalidateActiveOTPs(gomock.Any(), user.ID, gomock.Any()).
		Return(int64(0), errors.New("db down"))

	err := svc.RequestOTP(context.Background(), "user@example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInternal)
}

func TestRequestOTP_CancelledContext(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.RequestOTP(ctx, "user@example.com")
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrInternal)
}

func TestVerifyOTP_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()
	now := time.Now().UTC()
	otp := &models.OneTimePassword{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "4821",
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().ActiveOTPByUserID(gomock.Any(), user.ID, gomock.Any()).Return(otp, nil)
	st.EXPECT().MarkOTPUsed(gomock.Any(), otp.ID).Return(nil)
	st.EXPECT().SaveAccessToken(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	pair, err := svc.VerifyOTP(context.Background(), "user@example.com", "4821")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.WithinDuration(t, time.Now().Add(time.Hour), pair.ExpiresAt, 2*time.Second)
}

func TestVerifyOTP_EmptyCode(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.VerifyOTP(context.Background(), "user@example.com", "  ")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyOTPCode)
}

func TestVerifyOTP_UserNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	_, err := svc.VerifyOTP(context.Background(), "ghost@example.com", "4821")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyOTP_NoActiveCode(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().ActiveOTPByUserID(gomock.Any(), user.ID, gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err := svc.VerifyOTP(context.Background(), "user@example.com", "4821")
	require.ErrorIs(t, err, ErrOTPNotFound)
}

func TestVerifyOTP_Expired(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()
	otp := &models.OneTimePassword{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "4821",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().ActiveOTPByUserID(gomock.Any(), user.ID, gomock.Any()).Return(otp, nil)

	_, err := svc.VerifyOTP(context.Background(), "user@example.com", "4821")
	require.ErrorIs(t, err, ErrOTPExpired)
}

func TestVerifyOTP_AlreadyUsed(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()
	otp := &models.OneTimePassword{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "4821",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
		Used:      true,
	}

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().ActiveOTPByUserID(gomock.Any(), user.ID, gomock.Any()).Return(otp, nil)

	_, err := svc.VerifyOTP(context.Background(), "user@example.com", "4821")
	require.ErrorIs(t, err, ErrOTPAlreadyUsed)
}

func TestVerifyOTP_Mismatch_NothingMutated(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()
	otp := &models.OneTimePassword{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "4821",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
	}

	// MarkOTPUsed и выпуск токенов не ожидаются: несовпавший код ничего не меняет.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().ActiveOTPByUserID(gomock.Any(), user.ID, gomock.Any()).Return(otp, nil)

	_, err := svc.VerifyOTP(context.Background(), "user@example.com", "9999")
	require.ErrorIs(t, err, ErrOTPMismatch)
}

func TestVerifyOTP_MarkUsedError_Internal(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()
	otp := &models.OneTimePassword{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "4821",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
	}

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	st.EXPECT().ActiveOTPByUserID(gomock.Any(), user.ID, gomock.Any()).Return(otp, nil)
	st.EXPECT().MarkOTPUsed(gomock.Any(), otp.ID).Return(errors.New("db down"))

	_, err := svc.VerifyOTP(context.Background(), "user@example.com", "4821")
	require.ErrorIs(t, err, ErrInternal)
}

func TestRefreshAccessToken_OK_SameRefreshEchoed(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := testUser()
	plain := "opaque-refresh-secret"
	now := time.Now().UTC()
	token := &models.RefreshToken{
		ID:        uuid.New(),
		TokenHash: hashToken(plain),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	st.EXPECT().RefreshTokenByHash(gomock.Any(), hashToken(plain)).Return(token, nil)
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	st.EXPECT().SaveAccessToken(gomock.Any(), gomock.Any()).Return(nil)

	pair, err := svc.RefreshAccessToken(context.Background(), plain)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	// Refresh-токен не ротируется: возвращается та же строка.
	require.Equal(t, plain, pair.RefreshToken)
}

func TestRefreshAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RefreshAccessToken(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyToken)
}

func TestRefreshAccessToken_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().RefreshTokenByHash(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err := svc.RefreshAccessToken(context.Background(), "unknown-token")
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	token := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}

	st.EXPECT().RefreshTokenByHash(gomock.Any(), gomock.Any()).Return(token, nil)

	_, err := svc.RefreshAccessToken(context.Background(), "stale-token")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshAccessToken_Revoked(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	token := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		Revoked:   true,
	}

	st.EXPECT().RefreshTokenByHash(gomock.Any(), gomock.Any()).Return(token, nil)

	_, err := svc.RefreshAccessToken(context.Background(), "revoked-token")
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRevokeRefreshToken_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	plain := "opaque-refresh-secret"

	st.EXPECT().RevokeRefreshToken(gomock.Any(), hashToken(plain)).Return(true, nil)

	err := svc.RevokeRefreshToken(context.Background(), plain)
	require.NoError(t, err)
}

func TestRevokeRefreshToken_DropsCacheEntry(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	plain := "opaque-refresh-secret"
	hash := hashToken(plain)

	rc := &staticCache{entries: map[string]cacheState{
		hash: {userID: uuid.New(), expiresAt: time.Now().UTC().Add(time.Hour)},
	}}
	svc.SetRefreshCache(rc)

	st.EXPECT().RevokeRefreshToken(gomock.Any(), hash).Return(true, nil)

	require.NoError(t, svc.RevokeRefreshToken(context.Background(), plain))

	// Запись удалена: кэш не сможет отдать устаревшее revoked = false.
	require.Equal(t, []string{hash}, rc.dropped)
	require.NotContains(t, rc.entries, hash)
}

func TestRevokeRefreshToken_CacheDropFailure_NotFatal(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	svc.SetRefreshCache(&staticCache{dropErr: errors.New("redis down")})

	st.EXPECT().RevokeRefreshToken(gomock.Any(), gomock.Any()).Return(true, nil)

	err := svc.RevokeRefreshToken(context.Background(), "opaque-refresh-secret")
	require.NoError(t, err)
}

func TestRevokeRefreshToken_AlreadyRevoked(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().RevokeRefreshToken(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.RevokeRefreshToken(context.Background(), "revoked-token")
	require.ErrorIs(t, err, ErrTokenAlreadyRevoked)
}

func TestRevokeRefreshToken_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().RevokeRefreshToken(gomock.Any(), gomock.Any()).Return(false, storage.ErrNotFound)

	err := svc.RevokeRefreshToken(context.Background(), "unknown-token")
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRevokeRefreshToken_Twice_SecondFails(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	plain := "opaque-refresh-secret"
	hash := hashToken(plain)

	gomock.InOrder(
		st.EXPECT().RevokeRefreshToken(gomock.Any(), hash).Return(true, nil),
		st.EXPECT().RevokeRefreshToken(gomock.Any(), hash).Return(false, nil),
	)

	require.NoError(t, svc.RevokeRefreshToken(context.Background(), plain))
	require.ErrorIs(t, svc.RevokeRefreshToken(context.Background(), plain), ErrTokenAlreadyRevoked)
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	in := validRegisterInput()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(nil, storage.ErrNotFound)
	st.EXPECT().UserByUsername(gomock.Any(), "athlete").Return(nil, storage.ErrNotFound)
	st.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User, profile *models.Profile, settings *models.Settings) error {
			require.Equal(t, models.RoleMember, user.Role)
			require.Equal(t, "user@example.com", user.Email)
			require.Equal(t, user.ID, profile.UserID)
			require.Equal(t, models.GenderMale, profile.Gender)
			require.Equal(t, models.ActivityAverage, profile.ActivityLevel)
			require.Equal(t, models.GoalWeightLoss, profile.FitnessGoal)
			require.Equal(t, models.ThemeDark, settings.Theme)
			require.Equal(t, models.LanguageEnglish, settings.Language)
			return nil
		})

	user, err := svc.RegisterUser(context.Background(), in)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, "athlete", user.Username)
}

func TestRegisterUser_InvalidEmail_NoStorageCalls(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	in := validRegisterInput()
	in.Email = "broken"

	_, err := svc.RegisterUser(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_BlankUsername(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	in := validRegisterInput()
	in.Username = "   "

	_, err := svc.RegisterUser(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterUser_OutOfRangeProfile(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	cases := []struct {
		name   string
		mutate func(*RegisterUserInput)
	}{
		{"age_above_max", func(in *RegisterUserInput) { in.Age = 200 }},
		{"age_below_min", func(in *RegisterUserInput) { in.Age = 12 }},
		{"weight_below_min", func(in *RegisterUserInput) { in.Weight = 29 }},
		{"weight_above_max", func(in *RegisterUserInput) { in.Weight = 301 }},
		{"height_below_min", func(in *RegisterUserInput) { in.Height = 49 }},
		{"height_above_max", func(in *RegisterUserInput) { in.Height = 251 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegisterInput()
			tc.mutate(&in)

			_, err := svc.RegisterUser(context.Background(), in)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestRegisterUser_UnknownEnums(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	in := validRegisterInput()
	in.Gender = "other"

	_, err := svc.RegisterUser(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	in = validRegisterInput()
	in.FitnessGoal = "get_swole"

	_, err = svc.RegisterUser(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{ID: uuid.New(), Email: "user@example.com"}, nil)

	_, err := svc.RegisterUser(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_UsernameTaken(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(nil, storage.ErrNotFound)
	st.EXPECT().UserByUsername(gomock.Any(), "athlete").
		Return(&models.User{ID: uuid.New(), Username: "athlete"}, nil)

	_, err := svc.RegisterUser(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterUser_CreateRace_MapsToEmailTaken(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Гонка: между проверками и вставкой кто-то успел занять email.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(nil, storage.ErrNotFound)
	st.EXPECT().UserByUsername(gomock.Any(), "athlete").Return(nil, storage.ErrNotFound)
	st.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, ErrEmailTaken)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/nanmax/newsfeed/internal/config"
	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/storage"
	"github.com/nanmax/newsfeed/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-secret",
		AccessTokenTTL:  30 * time.Second,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "newsfeed",
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hashPassword(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) (int64, error) {
			require.Equal(t, "alice", u.Username)
			require.NotEmpty(t, u.PasswordHash)
			require.NotEqual(t, "hunter22", u.PasswordHash)
			return 7, nil
		})

	user, err := svc.RegisterUser(ctx, "alice", "hunter22")
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.PasswordHash)
}

func TestRegisterUser_InvalidUsername(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	for _, username := range []string{"", "ab", "has space", "так-нельзя"} {
		_, err := svc.RegisterUser(context.Background(), username, "hunter22")
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidUsername)
	}
}

func TestRegisterUser_WeakOrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "alice", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)

	_, err = svc.RegisterUser(context.Background(), "alice", "short")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterUser_UsernameTaken_OnLookup(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Если UserByUsername вернул пользователя (err == nil) — username занят.
	st.EXPECT().UserByUsername(gomock.Any(), "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.RegisterUser(context.Background(), "alice", "hunter22")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterUser_UniqueViolation_OnSave(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Гонка двух регистраций: предварительная проверка прошла,
	// но уникальный индекс в БД отклонил вставку.
	st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(int64(0), storage.ErrAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), "alice", "hunter22")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterUser_StorageLookupError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByUsername(gomock.Any(), "alice").
		Return(nil, errors.New("db down"))

	_, err := svc.RegisterUser(context.Background(), "alice", "hunter22")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginUser_OK_RevokesPriorSessions(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{
		ID:           3,
		Username:     "alice",
		PasswordHash: mustHashPW(t, "hunter22"),
	}

	st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(user, nil)
	// Вход всегда отзывает прежние refresh-токены аккаунта.
	st.EXPECT().RevokeAllUserTokens(gomock.Any(), int64(3)).Return(int64(2), nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	pair, err := svc.LoginUser(ctx, "alice", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), pair.AccessExpiresAt, 2*time.Second)
}

func TestLoginUser_InvalidCredentials_Indistinguishable(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	// Неизвестный username и неверный пароль должны давать одну и ту же
	// ошибку: по ответу нельзя перечислять существующие аккаунты.
	st.EXPECT().UserByUsername(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)
	_, errUnknown := svc.LoginUser(ctx, "ghost", "hunter22")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)

	st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(&models.User{
		ID:           3,
		Username:     "alice",
		PasswordHash: mustHashPW(t, "hunter22"),
	}, nil)
	_, errWrongPW := svc.LoginUser(ctx, "alice", "not-the-password")
	require.ErrorIs(t, errWrongPW, ErrInvalidCredentials)
}

func TestLoginUser_EmptyInput(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.LoginUser(context.Background(), "", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginUser(context.Background(), "alice", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().RevokeAllUserTokens(gomock.Any(), int64(5)).Return(int64(3), nil)
	require.NoError(t, svc.Logout(context.Background(), 5))
}

func TestLogout_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().RevokeAllUserTokens(gomock.Any(), int64(5)).Return(int64(0), errors.New("db down"))
	require.Error(t, svc.Logout(context.Background(), 5))
}

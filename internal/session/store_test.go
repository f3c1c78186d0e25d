package session

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/remote"
)

// Mock структуры

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthAPI) Register(ctx context.Context, input remote.RegisterInput) (string, *domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

var ivan = &domain.User{ID: "u1", Name: "Ivan", Email: "ivan@example.com", Phone: "123456", Role: domain.RoleCustomer}

// Тест 1: Вход сохраняет сессию в памяти и на диске
func TestStore_Login_PersistsSession(t *testing.T) {
	mockAPI := &MockAuthAPI{}
	path := sessionPath(t)
	store := NewStore(path, mockAPI)

	ctx := context.Background()
	mockAPI.On("Login", ctx, "ivan@example.com", "secret1").Return("tok-1", ivan, nil).Once()

	user, err := store.Login(ctx, "ivan@example.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, ivan, user)
	assert.Equal(t, "tok-1", store.Token())

	current, ok := store.Current()
	assert.True(t, ok)
	assert.Equal(t, ivan, current)

	// файл сессии появился
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	mockAPI.AssertExpectations(t)
}

// Тест 2: Ошибка входа не оставляет следов
func TestStore_Login_Error(t *testing.T) {
	mockAPI := &MockAuthAPI{}
	path := sessionPath(t)
	store := NewStore(path, mockAPI)

	ctx := context.Background()
	mockAPI.On("Login", ctx, "ivan@example.com", "wrong").Return("", nil, assert.AnError).Once()

	user, err := store.Login(ctx, "ivan@example.com", "wrong")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, store.Token())
	_, ok := store.Current()
	assert.False(t, ok)

	mockAPI.AssertExpectations(t)
}

// Тест 3: Порядок валидации регистрации, сеть не трогается
func TestStore_Signup_ValidationOrder(t *testing.T) {
	testCases := []struct {
		name          string
		form          RegistrationForm
		expectedField string
		expectedMsg   string
	}{
		{
			name:          "Missing name",
			form:          RegistrationForm{},
			expectedField: "name",
			expectedMsg:   "name is required",
		},
		{
			name:          "Missing email",
			form:          RegistrationForm{Name: "Ivan"},
			expectedField: "email",
			expectedMsg:   "email is required",
		},
		{
			name:          "Missing password",
			form:          RegistrationForm{Name: "Ivan", Email: "a@b.c"},
			expectedField: "password",
			expectedMsg:   "password is required",
		},
		{
			name: "Password mismatch before length",
			form: RegistrationForm{
				Name: "Ivan", Email: "a@b.c",
				Password: "123", ConfirmPassword: "124",
			},
			expectedField: "confirmPassword",
			expectedMsg:   "passwords do not match",
		},
		{
			name: "Short password",
			form: RegistrationForm{
				Name: "Ivan", Email: "a@b.c",
				Password: "123", ConfirmPassword: "123",
			},
			expectedField: "password",
			expectedMsg:   "at least 6 characters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockAPI := &MockAuthAPI{}
			store := NewStore(sessionPath(t), mockAPI)

			user, err := store.Signup(context.Background(), tc.form)

			assert.Nil(t, user)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.expectedField, vErr.Field)
			assert.Contains(t, vErr.Message, tc.expectedMsg)
			mockAPI.AssertNotCalled(t, "Register")
		})
	}
}

// Тест 4: Успешная регистрация сразу авторизует
func TestStore_Signup_Success(t *testing.T) {
	mockAPI := &MockAuthAPI{}
	store := NewStore(sessionPath(t), mockAPI)

	ctx := context.Background()
	mockAPI.On("Register", ctx, remote.RegisterInput{
		Name:     "Ivan",
		Email:    "ivan@example.com",
		Phone:    "123456",
		Password: "secret1",
	}).Return("tok-2", ivan, nil).Once()

	user, err := store.Signup(ctx, RegistrationForm{
		Name:            "Ivan",
		Email:           "ivan@example.com",
		Phone:           "123456",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})

	assert.NoError(t, err)
	assert.Equal(t, ivan, user)
	assert.Equal(t, "tok-2", store.Token())

	mockAPI.AssertExpectations(t)
}

// Тест 5: Восстановление сессии после перезапуска
func TestStore_Restore_Roundtrip(t *testing.T) {
	mockAPI := &MockAuthAPI{}
	path := sessionPath(t)
	store := NewStore(path, mockAPI)

	ctx := context.Background()
	mockAPI.On("Login", ctx, "ivan@example.com", "secret1").Return("tok-1", ivan, nil).Once()
	_, err := store.Login(ctx, "ivan@example.com", "secret1")
	assert.NoError(t, err)

	// новый процесс с тем же файлом
	fresh := NewStore(path, mockAPI)
	user, restored := fresh.Restore()

	assert.True(t, restored)
	assert.Equal(t, ivan.Email, user.Email)
	assert.Equal(t, "tok-1", fresh.Token())
}

// Тест 6: Битый или неполный файл сессии игнорируется
func TestStore_Restore_BadFile(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "Missing file", content: ""},
		{name: "Garbage", content: "not json at all"},
		{name: "Token without user", content: `{"token":"tok-1"}`},
		{name: "User without token", content: `{"user":{"_id":"u1","name":"Ivan"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := sessionPath(t)
			if tc.content != "" {
				assert.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))
			}
			store := NewStore(path, &MockAuthAPI{})

			user, restored := store.Restore()

			assert.False(t, restored)
			assert.Nil(t, user)
			assert.Empty(t, store.Token())
		})
	}
}

// Тест 7: Выход очищает память и удаляет файл, сеть не трогается
func TestStore_Logout(t *testing.T) {
	mockAPI := &MockAuthAPI{}
	path := sessionPath(t)
	store := NewStore(path, mockAPI)

	ctx := context.Background()
	mockAPI.On("Login", ctx, "ivan@example.com", "secret1").Return("tok-1", ivan, nil).Once()
	_, err := store.Login(ctx, "ivan@example.com", "secret1")
	assert.NoError(t, err)

	store.Logout()

	assert.Empty(t, store.Token())
	_, ok := store.Current()
	assert.False(t, ok)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// повторный выход безопасен
	store.Logout()
	mockAPI.AssertExpectations(t)
}

// Тест 8: Ошибка удаления файла сессии не проглатывается
func TestStore_Logout_RemoveErrorLogged(t *testing.T) {
	// путь занят непустым каталогом, os.Remove обязан провалиться
	path := filepath.Join(t.TempDir(), "session.json")
	assert.NoError(t, os.MkdirAll(filepath.Join(path, "nested"), 0o700))

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	store := NewStore(path, &MockAuthAPI{})
	store.Logout()

	assert.Contains(t, buf.String(), "clear persisted session")

	// память очищена несмотря на ошибку файла
	assert.Empty(t, store.Token())
	_, ok := store.Current()
	assert.False(t, ok)

	// нечитаемый файл не воскрешает сессию
	_, restored := store.Restore()
	assert.False(t, restored)
}

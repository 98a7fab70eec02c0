// service содержит бизнес-логику сервиса аутентификации и авторизации:
// проверку учётных данных, выпуск/проверку токенов, ротацию refresh-токенов,
// определение тенанта запроса и вычисление эффективных разрешений.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//     Таблица грантов загружается один раз на старте (LoadGrants) и далее
//     только читается.
//   - Текущий principal и текущий тенант всегда передаются явными параметрами;
//     скрытого request-scoped состояния нет.
//   - Ошибки возвращаются и далее маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"
	"time"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/cache"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/config"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials — пара логин/секрет неверна, пользователь не найден
	// или учётная запись отключена. Ответ намеренно не различает эти случаи,
	// чтобы исключить перебор логинов. Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — access-токен некорректен по формату/подписи/issuer/audience.
	// Фатально: клиенту нужен повторный вход. Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия access-токена истёк. В отличие от
	// ErrInvalidToken клиенту следует сначала попытаться обновить пару
	// через refresh. Транспорт: 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrRefreshTokenInvalid — refresh-токен не найден, отозван, уже потреблён
	// или просрочен. Фатально: требуется повторный вход. Повторное предъявление
	// потреблённого токена дополнительно логируется как сигнал кражи.
	// Транспорт: 401.
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")

	// ErrForbidden — principal аутентифицирован, но не имеет доступа к тенанту,
	// роли или разрешению. Ответ не раскрывает, существует ли ресурс.
	// Транспорт: 403.
	ErrForbidden = errors.New("forbidden")

	// ErrTenantUnresolved — операция требует тенанта, но ни один из сигналов
	// (явный, маршрутный, дефолт токена) не задан. Транспорт: 400.
	ErrTenantUnresolved = errors.New("tenant unresolved")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный
	// refresh-токен (редкий случай коллизий хэша в БД). Транспорт: 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")
)

// SecretVerifier сравнивает секрет с хранимым хэшем.
// Алгоритм хэширования — внешний коллаборатор; по умолчанию bcrypt.
type SecretVerifier func(hash, secret string) bool

// Service описывает бизнес-логику сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
	grants  *GrantTable        // загружается LoadGrants на старте

	// now и verifySecret — инжектируемые коллабораторы (часы и проверка секрета);
	// подменяются в тестах.
	now          func() time.Time
	verifySecret SecretVerifier
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
		verifySecret: func(hash, secret string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
		},
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}

// SetSecretVerifier заменяет функцию проверки секрета (опционально).
func (s *Service) SetSecretVerifier(v SecretVerifier) {
	if v != nil {
		s.verifySecret = v
	}
}

// SetClock заменяет источник времени (используется в тестах).
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

package storage

import (
	"go.uber.org/zap"

	"hr-interview-backend/internal/session"
)

// LayeredStore сочетает память (быстрый путь) и долговременное хранилище.
// Запись всегда сначала попадает в память; отказ долговременного слоя
// логируется и не теряет состояние — копия в памяти остается источником
// правды до следующей успешной записи.
type LayeredStore struct {
	memory  *MemoryStore
	durable session.Store
	log     *zap.Logger
}

// NewLayeredStore создает слоеное хранилище. durable может быть nil,
// тогда остается только память.
func NewLayeredStore(durable session.Store, log *zap.Logger) *LayeredStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &LayeredStore{
		memory:  NewMemoryStore(),
		durable: durable,
		log:     log,
	}
}

func (l *LayeredStore) Save(sess *session.Session) error {
	if err := l.memory.Save(sess); err != nil {
		return err
	}
	if l.durable != nil {
		if err := l.durable.Save(sess); err != nil {
			l.log.Warn("не удалось сохранить сессию в долговременное хранилище",
				zap.String("token", sess.Token),
				zap.Error(err))
		}
	}
	return nil
}

func (l *LayeredStore) Load(token string) (*session.Session, error) {
	sess, err := l.memory.Load(token)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	if l.durable == nil {
		return nil, nil
	}

	sess, err = l.durable.Load(token)
	if err != nil {
		l.log.Warn("не удалось загрузить сессию из долговременного хранилища",
			zap.String("token", token),
			zap.Error(err))
		return nil, nil
	}
	if sess == nil {
		return nil, nil
	}

	// Прогреваем память для быстрых повторных обращений
	if err := l.memory.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (l *LayeredStore) Delete(token string) error {
	if err := l.memory.Delete(token); err != nil {
		return err
	}
	if l.durable != nil {
		if err := l.durable.Delete(token); err != nil {
			l.log.Warn("не удалось удалить сессию из долговременного хранилища",
				zap.String("token", token),
				zap.Error(err))
		}
	}
	return nil
}

// All возвращает активные сессии из памяти: админка показывает текущее
// состояние процесса, как и исходная система.
func (l *LayeredStore) All() []*session.Session {
	return l.memory.All()
}

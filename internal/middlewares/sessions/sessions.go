package sessions

import (
	"encoding/gob"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/khanghh/signup/internal/form"
)

const (
	injectSessionKey = "session"
	sessionDataKey   = "data"
	formKeyPrefix    = "form:"
)

type SessionData struct {
	id        string    // session id
	IP        string    // client ip address
	UserID    uint      // user id
	LastSeen  time.Time // last request time
	LoginTime time.Time // last login time
}

func (s SessionData) ID() string {
	return s.id
}

func (s *SessionData) IsLoggedIn() bool {
	return s.UserID != 0
}

func init() {
	gob.Register(SessionData{})
}

func GenerateSessionID() string {
	return uuid.NewString()
}

func getSession(ctx *fiber.Ctx) *session.Session {
	return ctx.Locals(injectSessionKey).(*session.Session)
}

func Get(ctx *fiber.Ctx) SessionData {
	sess := getSession(ctx)
	data, _ := sess.Get(sessionDataKey).(SessionData)
	data.id = sess.ID()
	return data
}

func Set(ctx *fiber.Ctx, data SessionData) {
	getSession(ctx).Set(sessionDataKey, data)
}

func Destroy(ctx *fiber.Ctx) error {
	return getSession(ctx).Destroy()
}

// Reset issues a new session id, keeping nothing from the old session but
// data. Called on login to prevent session fixation.
func Reset(ctx *fiber.Ctx, data SessionData) error {
	sess := getSession(ctx)
	if err := sess.Reset(); err != nil {
		return err
	}
	sess.Set(sessionDataKey, data)
	return nil
}

// GetForm returns the form snapshot of kind saved in the session.
func GetForm(ctx *fiber.Ctx, kind form.Kind) (form.Snapshot, bool) {
	snap, ok := getSession(ctx).Get(formKeyPrefix + string(kind)).(form.Snapshot)
	return snap, ok
}

func SetForm(ctx *fiber.Ctx, snap form.Snapshot) {
	getSession(ctx).Set(formKeyPrefix+string(snap.Kind), snap)
}

func DeleteForm(ctx *fiber.Ctx, kind form.Kind) {
	getSession(ctx).Delete(formKeyPrefix + string(kind))
}

// Value and SetValue give other middlewares a slot in the session.
func Value(ctx *fiber.Ctx, key string) interface{} {
	return getSession(ctx).Get(key)
}

func SetValue(ctx *fiber.Ctx, key string, val interface{}) {
	getSession(ctx).Set(key, val)
}

func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess, err := store.Get(ctx)
		if err != nil {
			return err
		}

		ctx.Locals(injectSessionKey, sess)
		if err := ctx.Next(); err != nil {
			return err
		}

		if data, ok := sess.Get(sessionDataKey).(SessionData); ok {
			data.LastSeen = time.Now()
			sess.Set(sessionDataKey, data)
		}
		if len(sess.Keys()) == 0 {
			return nil
		}
		return sess.Save()
	}
}

package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"dummy-importer/core/utils"
	"dummy-importer/feature/importer/models"

	"github.com/go-viper/mapstructure/v2"
)

// ErrMalformedRecord is returned when an upstream record misses a field or
// carries a value that cannot be mapped (e.g. an unparsable birth date).
var ErrMalformedRecord = errors.New("malformed record")

// birthDateLayout accepts both 1996-05-30 and 1996-5-30.
const birthDateLayout = "2006-1-2"

type addressRecord struct {
	Address string `mapstructure:"address"`
	City    string `mapstructure:"city"`
}

type bankRecord struct {
	CardExpire string `mapstructure:"cardExpire"`
	CardNumber string `mapstructure:"cardNumber"`
	CardType   string `mapstructure:"cardType"`
	Currency   string `mapstructure:"currency"`
	IBAN       string `mapstructure:"iban"`
}

type userRecord struct {
	ID        int           `mapstructure:"id"`
	FirstName string        `mapstructure:"firstName"`
	LastName  string        `mapstructure:"lastName"`
	Email     string        `mapstructure:"email"`
	Phone     string        `mapstructure:"phone"`
	Username  string        `mapstructure:"username"`
	BirthDate string        `mapstructure:"birthDate"`
	Height    int           `mapstructure:"height"`
	Weight    int           `mapstructure:"weight"`
	Address   addressRecord `mapstructure:"address"`
	Bank      bankRecord    `mapstructure:"bank"`
}

// reactionCount accepts a plain counter or a {likes, dislikes} object.
type reactionCount int

type postRecord struct {
	ID        int           `mapstructure:"id"`
	Title     string        `mapstructure:"title"`
	Body      string        `mapstructure:"body"`
	Reactions reactionCount `mapstructure:"reactions"`
}

var reactionCountType = reflect.TypeOf(reactionCount(0))

// numberHook truncates JSON numbers into int fields and unwraps reaction objects.
func numberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to == reactionCountType {
		if obj, ok := data.(map[string]any); ok {
			data = obj["likes"]
			if data == nil {
				return 0, nil
			}
		}
	}
	if to.Kind() != reflect.Int {
		return data, nil
	}
	switch data.(type) {
	case json.Number, float64, float32:
		n, ok := utils.ToInt(data)
		if !ok {
			return nil, fmt.Errorf("%v is not a number", data)
		}
		return n, nil
	}
	return data, nil
}

// decodeRecord maps a raw upstream object onto out. Every field of out must be
// present in raw; extra upstream fields are ignored.
func decodeRecord(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       numberHook,
		WeaklyTypedInput: true,
		ErrorUnset:       true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return nil
}

func decodeUser(raw map[string]any) (*userRecord, error) {
	var rec userRecord
	if err := decodeRecord(raw, &rec); err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	return &rec, nil
}

func decodePost(raw map[string]any) (*postRecord, error) {
	var rec postRecord
	if err := decodeRecord(raw, &rec); err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	return &rec, nil
}

// applyTo overwrites every scalar field of u. DummyID is only written once.
func (r *userRecord) applyTo(u *models.User) error {
	birth, err := time.Parse(birthDateLayout, r.BirthDate)
	if err != nil {
		return fmt.Errorf("%w: user %d: birth date %q is not YYYY-MM-DD", ErrMalformedRecord, r.ID, r.BirthDate)
	}

	if u.DummyID == 0 {
		u.DummyID = r.ID
	}
	u.FirstName = r.FirstName
	u.LastName = r.LastName
	u.Email = r.Email
	u.Phone = r.Phone
	u.Username = r.Username
	u.BirthDate = birth
	u.Height = r.Height
	u.Weight = r.Weight
	u.Address = r.Address.Address
	u.City = r.Address.City
	return nil
}

func (r *bankRecord) applyTo(b *models.Bank) {
	b.CardExpire = r.CardExpire
	b.CardNumber = r.CardNumber
	b.CardType = r.CardType
	b.Currency = r.Currency
	b.IBAN = r.IBAN
}

func (r *postRecord) applyTo(p *models.Post, owner *models.User) {
	if p.DummyID == 0 {
		p.DummyID = r.ID
	}
	p.Title = r.Title
	p.Body = r.Body
	p.Reactions = int(r.Reactions)
	p.UserID = owner.ID
}

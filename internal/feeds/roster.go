package feeds

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
)

// BuildRoster encodes stylists as a vCard 4.0 stream.
func BuildRoster(ctx context.Context, stylists []datefilter.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	for i, s := range stylists {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := s.String(config.FieldName)
		if name == "" {
			name = config.FallbackName
		}

		card := vcard.Card{}
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldFormattedName, name)
		card.SetValue(vcard.FieldUID, "urn:uuid:"+stableUID(config.ResourceStylists, s, strconv.Itoa(i)))
		if phone := s.String(config.FieldPhone); phone != "" {
			card.SetValue(vcard.FieldTelephone, phone)
		}
		if email := s.String(config.FieldEmail); email != "" {
			card.SetValue(vcard.FieldEmail, email)
		}
		if specialty := s.String(config.FieldSpecialty); specialty != "" {
			card.SetValue(vcard.FieldTitle, specialty)
		}

		if err := enc.Encode(card); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}

	slog.Info(config.MsgRosterBuilt,
		slog.String(config.LogKeyComponent, config.CompFeeds),
		slog.Int(config.LogKeyCount, len(stylists)),
	)
	return buf.Bytes(), nil
}

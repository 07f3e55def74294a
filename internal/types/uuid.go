package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex ltr_01J9Z3Q7V6M2N8K4X0P5R1T3W2
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short URL and path safe identifier,
// e.g. att_kH3s9QzVg. It falls back to a ULID if the generator fails.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return GenerateUUIDWithPrefix(prefix)
	}
	id = strings.NewReplacer("-", "", "_", "").Replace(id)

	if prefix == "" {
		return id
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}

const (
	SHORT_ID_PREFIX_ATTACHMENT = "att"
)

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_ORGANIZATION          = "org"
	UUID_PREFIX_CATEGORY              = "cat"
	UUID_PREFIX_RECIPIENT             = "rcpt"
	UUID_PREFIX_DEPARTMENT            = "dept"
	UUID_PREFIX_DEPARTMENT_PERMISSION = "dperm"
	UUID_PREFIX_USER                  = "user"
	UUID_PREFIX_LETTER                = "ltr"
	UUID_PREFIX_LETTER_COPY           = "ltr_cc"
	UUID_PREFIX_LETTER_ATTACHMENT     = "ltr_att"
	UUID_PREFIX_LETTER_REFERENCE      = "ltr_ref"
	UUID_PREFIX_AGREEMENT             = "agr"
	UUID_PREFIX_AGREEMENT_TYPE        = "agr_type"
	UUID_PREFIX_NOTIFICATION_EVENT    = "ntf"
)

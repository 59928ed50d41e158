/*Export sinks for the materialized transaction list.

A sink receives the merged (server + local edits) view, not raw server
records — what you export is what you see.*/
package export

import (
	"github.com/devshahid/moneymind/pkg/domain"
)

type Sink interface {
	Write([]*domain.Transaction) error
}

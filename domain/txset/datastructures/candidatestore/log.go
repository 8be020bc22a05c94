package candidatestore

import (
	"github.com/kaspanet/gentxset/infrastructure/logger"
)

var log = logger.RegisterSubSystem("STOR")

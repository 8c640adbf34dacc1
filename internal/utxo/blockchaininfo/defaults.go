package blockchaininfo

import "time"

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "blockinsight7000-analytics"
)

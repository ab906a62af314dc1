package consts

const (
	SyncBatchLockKey = "sync:batch:lock"
)

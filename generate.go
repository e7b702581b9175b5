package tokenengine

//go:generate go run go.uber.org/mock/mockgen -package mock -destination testing/mock/tokenengine.go github.com/oidckit/tokenengine Protector,SignedBackend,IssuanceHook,ValidationHook

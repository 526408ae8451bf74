package logger

// nopLogger discards everything. Used by tests that exercise components
// which log cleanup warnings.
type nopLogger struct{}

func NewNopLogger() Logger {
	return &nopLogger{}
}

func (n *nopLogger) InitLogger()                                   {}
func (n *nopLogger) Debug(args ...interface{})                     {}
func (n *nopLogger) Debugf(template string, args ...interface{})   {}
func (n *nopLogger) Info(args ...interface{})                      {}
func (n *nopLogger) Infof(template string, args ...interface{})    {}
func (n *nopLogger) Warn(args ...interface{})                      {}
func (n *nopLogger) Warnf(template string, args ...interface{})    {}
func (n *nopLogger) Error(args ...interface{})                     {}
func (n *nopLogger) Errorf(template string, args ...interface{})   {}
func (n *nopLogger) DPanic(args ...interface{})                    {}
func (n *nopLogger) DPanicf(template string, args ...interface{})  {}
func (n *nopLogger) Fatal(args ...interface{})                     {}
func (n *nopLogger) Fatalf(template string, args ...interface{})   {}

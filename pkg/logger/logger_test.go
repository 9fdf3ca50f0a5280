package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/threadmapco/threadmap/pkg/logger"
)

var _ = Describe("NewLoggerWithWriters", func() {
	It("writes records to the provided writer", func() {
		var buf bytes.Buffer
		l := logger.NewLoggerWithWriters(false, &buf)
		l.Info("hello", zap.String("key", "value"))

		Expect(buf.String()).To(ContainSubstring("hello"))
		Expect(buf.String()).To(ContainSubstring("value"))
	})

	It("suppresses debug records at the default level", func() {
		var buf bytes.Buffer
		l := logger.NewLoggerWithWriters(false, &buf)
		l.Debug("hidden")
		Expect(buf.String()).To(BeEmpty())
	})

	It("emits debug records when the debug flag is set", func() {
		var buf bytes.Buffer
		l := logger.NewLoggerWithWriters(true, &buf)
		l.Debug("visible")
		Expect(buf.String()).To(ContainSubstring("visible"))
	})

	It("fans records out to every writer", func() {
		var a, b bytes.Buffer
		l := logger.NewLoggerWithWriters(false, &a, &b)
		l.Info("both")
		Expect(a.String()).To(ContainSubstring("both"))
		Expect(b.String()).To(ContainSubstring("both"))
	})
})

var _ = Describe("NewPretty", func() {
	It("writes human-readable output", func() {
		var buf bytes.Buffer
		l := logger.NewPretty(false, &buf)
		l.Info("ready", "sessions", 1)
		Expect(buf.String()).To(ContainSubstring("ready"))
	})

	It("respects the debug level", func() {
		var buf bytes.Buffer
		l := logger.NewPretty(true, &buf)
		l.Debug("verbose")
		Expect(buf.String()).To(ContainSubstring("verbose"))
	})
})

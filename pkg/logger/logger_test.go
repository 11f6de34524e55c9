package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerFormats(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		SetOutput(&buf)
		defer SetOutput(nil)
		So(SetLevelString("info"), ShouldBeNil)

		Convey("When the JSON format is selected", func() {
			So(InitWithFormat(FormatJSON), ShouldBeNil)
			Get().Info(context.Background(), "assessment done", String("category", "low"), Int("score", 12))

			Convey("Then each entry is a JSON object with the fields and source", func() {
				var entry map[string]any
				So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
				So(entry["msg"], ShouldEqual, "assessment done")
				So(entry["category"], ShouldEqual, "low")
				So(entry["score"], ShouldEqual, 12.0)
				So(entry["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the text format is selected", func() {
			So(InitWithFormat(FormatText), ShouldBeNil)
			Named("api").Warn(context.Background(), "slow request")

			Convey("Then the component name is attached", func() {
				So(buf.String(), ShouldContainSubstring, "component=api")
				So(buf.String(), ShouldContainSubstring, "slow request")
			})
		})

		Convey("When debug entries are logged at info level", func() {
			So(InitWithFormat(FormatText), ShouldBeNil)
			Get().Debug(context.Background(), "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When an unknown format is requested", func() {
			err := InitWithFormat("xml")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
				So(strings.Contains(err.Error(), "xml"), ShouldBeTrue)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "info", "", "warn", "warning", "ERROR"} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		So(SetLevelString("info"), ShouldBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		l := Nop()
		So(func() { l.Error(context.Background(), "ignored", Error(nil)) }, ShouldNotPanic)
	})
}

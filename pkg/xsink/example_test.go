package xsink_test

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/omeyang/logkit/pkg/xlevel"
	"github.com/omeyang/logkit/pkg/xsink"
)

func ExampleConsoleSink() {
	var buf bytes.Buffer
	sink := xsink.NewConsole(&buf)

	_ = sink.Write(xsink.Record{
		Time:   time.Now(),
		Level:  xlevel.LevelWarn,
		Msg:    "disk usage high",
		Fields: xsink.Fields{"usage": "91%"},
	})

	output := buf.String()
	fmt.Println("has level:", strings.Contains(output, "WARN"))
	fmt.Println("has msg:", strings.Contains(output, "disk usage high"))
	fmt.Println("has field:", strings.Contains(output, "usage=91%"))
	// Output:
	// has level: true
	// has msg: true
	// has field: true
}

func ExampleDescriptor_Matches() {
	threshold := xsink.Descriptor{Kind: xsink.FilterThreshold}
	exact := xsink.Descriptor{Kind: xsink.FilterExact, Level: xlevel.LevelError}

	current := xlevel.LevelInfo
	fmt.Println(threshold.Matches(xlevel.LevelWarn, current))
	fmt.Println(exact.Matches(xlevel.LevelWarn, current))
	fmt.Println(exact.Matches(xlevel.LevelError, current))
	// Output:
	// true
	// false
	// true
}

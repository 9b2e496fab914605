package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-python/gpython/py"

	_ "github.com/distgeom-systems/godg/pydg"
	_ "github.com/go-python/gpython/stdlib"
)

func runScript(pathname string) {
	ctx := py.NewContext(py.DefaultContextOpts())

	startTime := time.Now()
	fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

	_, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
	if err == nil {
		elapsed := time.Since(startTime)
		fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", elapsed)
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		log.Fatal(err)
	}
}

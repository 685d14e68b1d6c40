package snapshot_test

import (
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/scene"
	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

func ExampleFormatFloat() {
	for _, v := range []float64{1.0, 2.5000003, -0.0000001, 0.125} {
		fmt.Println(snapshot.FormatFloat(v))
	}
	// Output:
	// 1
	// 2.5
	// 0
	// 0.125
}

func ExampleEngine_Build() {
	reg := scene.NewRegistry("2022.3.10f1")
	main := reg.AddPartition("Main", "Assets/Main.unity")
	main.AddRoot(reg.NewObject("Player").SetTag("Player").SetPosition(0, 1, 0))

	engine := snapshot.NewEngine(reg, nil)
	engine.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	opts := snapshot.DefaultOptions()
	opts.IncludeComponents = false

	doc, ok, err := engine.Build(snapshot.SceneNamed("Main"), opts)
	if err != nil || !ok {
		fmt.Println("export failed")
		return
	}
	_ = document.WriteXML(os.Stdout, doc)
	// Output:
	// <?xml version="1.0" encoding="utf-8"?>
	// <Hierarchy exportTime="2024-01-02 03:04:05" unityVersion="2022.3.10f1" targetScene="Main">
	//   <Scene name="Main" active="true" path="Assets/Main.unity">
	//     <GameObject name="Player" active="true" layer="0" tag="Player" childCount="0">
	//       <Position x="0" y="1" z="0" />
	//       <Rotation x="0" y="0" z="0" />
	//       <Scale x="1" y="1" z="1" />
	//     </GameObject>
	//   </Scene>
	//   <Scene name="DontDestroyOnLoad" active="true" path="" />
	// </Hierarchy>
}

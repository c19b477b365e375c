package sqldata_test

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/syssam/sqldata"
)

func ExampleNewIntRange() {
	r := sqldata.NewIntRange(1, 10)
	fmt.Println(r)
	fmt.Println(r.Contains(1), r.Contains(10))
	// Output:
	// [1,10)
	// true false
}

func ExampleNewRangeBounds() {
	r := sqldata.NewRangeBounds(sqldata.Unbounded[int](), sqldata.Inclusive(5))
	fmt.Println(r)
	fmt.Println(sqldata.EmptyRange[int]())
	// Output:
	// (,5]
	// empty
}

func ExampleNewTimeRange() {
	from := time.Date(2021, time.January, 15, 10, 30, 0, 0, time.UTC)
	to := time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC)
	fmt.Println(sqldata.NewTimeRange(from, to))
	// Output:
	// ["2021-01-15 10:30:00+00","2021-02-01 00:00:00+00")
}

func ExampleParseInet() {
	host := sqldata.MustParseInet("192.168.0.1")
	subnet := sqldata.MustParseInet("10.0.0.8/16")
	fmt.Println(host)
	fmt.Println(subnet)
	// Output:
	// 192.168.0.1
	// 10.0.0.8/16
}

func ExampleParseCIDR() {
	_, err := sqldata.ParseCIDR("10.1.2.3/16")
	fmt.Println(err)
	// Output:
	// sqldata: parse cidr "10.1.2.3/16": host bits set below the prefix
}

func ExampleEnumType() {
	status := sqldata.MustEnumType("status", "active", "disabled")
	v := status.MustValue("active")
	fmt.Println(v)
	_, err := status.Value("deleted")
	fmt.Println(err)
	// Output:
	// active
	// sqldata: validator failed for "status": value "deleted" is not one of [active, disabled]
}

func ExampleJSON() {
	type settings struct {
		Theme string `json:"theme"`
	}
	doc := sqldata.NewJSON(settings{Theme: "dark"})
	v, _ := doc.Value()
	fmt.Printf("%s\n", v)
	// Output:
	// {"theme":"dark"}
}

func ExampleHStore() {
	h := sqldata.NewHStore(map[string]string{"env": "prod", "region": "eu"})
	h.SetNull("retired")
	fmt.Println(h)
	// Output:
	// "env"=>"prod", "region"=>"eu", "retired"=>NULL
}

func ExampleInt64Array() {
	v, _ := sqldata.Int64Array{1, 2, 3}.Value()
	fmt.Printf("%s\n", v)
	// Output:
	// {1,2,3}
}

func ExamplePoint() {
	p := sqldata.Point{X: 12.492, Y: 41.89, SRID: 4326}
	fmt.Println(p)
	b, _ := json.Marshal(p)
	fmt.Println(string(b))
	// Output:
	// SRID=4326;POINT(12.492 41.89)
	// {"type":"Point","coordinates":[12.492,41.89]}
}

func ExampleBinaryUUID() {
	id, _ := sqldata.ParseBinaryUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	v, _ := id.Value()
	fmt.Println(id, len(v.([]byte)))
	// Output:
	// 6ba7b810-9dad-11d1-80b4-00c04fd430c8 16
}

func ExampleCIText() {
	a, b := sqldata.CIText("Hello"), sqldata.CIText("HELLO")
	fmt.Println(a.Equal(b), a.Fold())
	// Output:
	// true hello
}

func ExampleMsgpackValueScanner() {
	type coords struct {
		Lat, Lng float64
	}
	codec := sqldata.MsgpackValueScanner[coords]{}
	v, _ := codec.Value(coords{Lat: 41.89, Lng: 12.492})

	dst := codec.ScanValue()
	_ = dst.Scan(v)
	back, _ := codec.FromValue(dst)
	fmt.Println(back.Lat, back.Lng)
	// Output:
	// 41.89 12.492
}

package codec_test

import (
	"fmt"
	"os"

	"github.com/bokysan/basecodec/internal/codec"
)

func ExampleCodec_EncodeToString() {
	s, _ := codec.StdBase32.EncodeToString([]byte("foo"), codec.None)
	fmt.Println(s)
	s, _ = codec.Crockford.EncodeToString([]byte("foo"), codec.Checksum)
	fmt.Println(s)
	// Output:
	// MZXW6===
	// CSQPYY
}

func ExampleCodec_NewEncoder() {
	enc, err := codec.StdBase64.NewEncoder(os.Stdout, codec.None)
	if err != nil {
		panic(err)
	}
	_, _ = enc.Write([]byte("M"))
	_, _ = enc.Write([]byte("a"))
	_ = enc.Close()
	fmt.Println()
	// Output: TWE=
}

func ExampleNumeric_EncodeUint64() {
	s, _ := codec.Number.EncodeUint64(1234, codec.Checksum)
	fmt.Println(s)
	v, err := codec.Number.DecodeUint64("16j-"+s[3:], codec.Checksum)
	fmt.Println(v, err)
	// Output:
	// 16JD
	// 1234 <nil>
}

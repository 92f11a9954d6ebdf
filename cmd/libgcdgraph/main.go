// Command libgcdgraph builds the C ABI for gcdgraph:
//
//	go build -buildmode=c-shared -o libgcdgraph.so ./cmd/libgcdgraph
//
// The generated header declares:
//
//	int largest_component_size(int* array, int length);
//	int largest_component_size_all_integers(int length);
//
// Both return -1 on invalid input. All cgo lives in this file.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"
)

//export largest_component_size
func largest_component_size(array *C.int, length C.int) C.int {
	if array == nil && length > 0 {
		return C.int(reportInvalid(errNilArray))
	}
	var src []int32
	if length > 0 && checkLength(int(length)) == nil {
		src = unsafe.Slice((*int32)(unsafe.Pointer(array)), int(length))
	}
	return C.int(largestComponentSize(src, int(length)))
}

//export largest_component_size_all_integers
func largest_component_size_all_integers(length C.int) C.int {
	return C.int(largestComponentSizeAllIntegers(int(length)))
}

func main() {}

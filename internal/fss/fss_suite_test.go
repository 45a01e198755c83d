package fss_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFSS(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FSS Suite")
}

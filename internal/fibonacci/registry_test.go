package fibonacci

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	t.Run("DefaultsRegistered", func(t *testing.T) {
		want := []string{ModeChecked, ModeSaturate, ModeWrap}
		if got := factory.List(); !reflect.DeepEqual(got, want) {
			t.Errorf("List() = %v, want %v", got, want)
		}
	})

	t.Run("RegisterAndHas", func(t *testing.T) {
		if err := factory.Register("stub", func() coreCalculator { return &stubCore{name: "stub", value: 7} }); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if !factory.Has("stub") {
			t.Error("Factory should have 'stub' calculator")
		}
		if factory.Has("nonexistent") {
			t.Error("Factory should not have 'nonexistent' calculator")
		}
		if err := factory.Register("nil", nil); err == nil {
			t.Error("Register should reject a nil creator")
		}
	})

	t.Run("GetCachesInstances", func(t *testing.T) {
		first, err := factory.Get(ModeWrap)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		second, _ := factory.Get(ModeWrap)
		if first != second {
			t.Error("Get should return the cached instance")
		}
		fresh, err := factory.Create(ModeWrap)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if fresh == first {
			t.Error("Create should return a new instance")
		}
	})

	t.Run("UnknownName", func(t *testing.T) {
		_, err := factory.Get("nonexistent")
		var unknown *UnknownCalculatorError
		if !errors.As(err, &unknown) || unknown.Name != "nonexistent" {
			t.Errorf("Get error = %v, want UnknownCalculatorError", err)
		}
		if _, err := factory.Create("nonexistent"); err == nil {
			t.Error("Create should fail for nonexistent calculator")
		}
	})

	t.Run("GetAll", func(t *testing.T) {
		all := factory.GetAll()
		for _, name := range []string{ModeWrap, ModeChecked, ModeSaturate} {
			if _, ok := all[name]; !ok {
				t.Errorf("GetAll missing %q", name)
			}
		}
		delete(all, ModeWrap)
		if !factory.Has(ModeWrap) {
			t.Error("mutating the GetAll result must not affect the factory")
		}
	})

	t.Run("ReRegisterDropsCache", func(t *testing.T) {
		_ = factory.Register("swap", func() coreCalculator { return &stubCore{name: "v1", value: 1} })
		before := factory.MustGet("swap")
		_ = factory.Register("swap", func() coreCalculator { return &stubCore{name: "v2", value: 2} })
		after := factory.MustGet("swap")
		if before.Name() == after.Name() {
			t.Error("re-registering should replace the cached calculator")
		}
		v, _ := after.Calculate(context.Background(), 0)
		if v != 2 {
			t.Errorf("new calculator returned %d", v)
		}
	})

	t.Run("MustGetPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("MustGet should panic for unknown calculator")
			}
		}()
		factory.MustGet("nonexistent")
	})
}

func TestDefaultFactoryConcurrentGet(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	var wg sync.WaitGroup
	results := make([]Calculator, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = factory.MustGet(ModeChecked)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent Get returned distinct instances")
		}
	}
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory should be a singleton")
	}
	calc := GlobalFactory().MustGet(ModeWrap)
	v, err := calc.Calculate(context.Background(), 10)
	if err != nil || v != 55 {
		t.Errorf("global wrap calculator returned %d, %v", v, err)
	}
}

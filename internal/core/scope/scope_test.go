package scope

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dep2p/go-lifecycle/pkg/types"
)

// TestScopeCloseLIFO 测试关闭时严格逆序回卷
func TestScopeCloseLIFO(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("lifo")

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		if _, err := s.Defer(name, func() error {
			order = append(order, name)
			return nil
		}); err != nil {
			t.Fatalf("Defer(%s) error = %v", name, err)
		}
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	want := []string{"c", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("回卷次数 = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("回卷顺序[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

// TestScopeCloseSkipsReleased 测试回卷跳过已释放守卫
func TestScopeCloseSkipsReleased(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("skip")

	var order []string
	ga, _ := s.Defer("a", func() error { order = append(order, "a"); return nil })
	s.Defer("b", func() error { order = append(order, "b"); return nil })

	if err := ga.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// a 已显式释放,关闭只执行 b
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("执行顺序 = %v, want [a b]", order)
	}
}

// TestScopeClosePromotesFirstFailure 测试主体无错时首个失败晋升为主错误
func TestScopeClosePromotesFirstFailure(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("promote")

	errA := errors.New("close a failed")
	errC := errors.New("close c failed")
	s.Defer("a", func() error { return errA })
	s.Defer("b", func() error { return nil })
	s.Defer("c", func() error { return errC })

	err := s.Close()
	if err == nil {
		t.Fatal("Close() error = nil, want 错误链")
	}

	var rerr *types.ReleaseError
	if !errors.As(err, &rerr) {
		t.Fatalf("Close() error 类型 = %T, want *types.ReleaseError", err)
	}
	// 逆序回卷里 c 先失败,晋升为主错误;a 被抑制
	if !errors.Is(rerr.Primary(), errC) {
		t.Errorf("Primary() = %v, want %v", rerr.Primary(), errC)
	}
	sup := rerr.Suppressed()
	if len(sup) != 1 || !errors.Is(sup[0], errA) {
		t.Errorf("Suppressed() = %v, want [%v]", sup, errA)
	}
	// errors.Is 能看到链上全部错误
	if !errors.Is(err, errC) || !errors.Is(err, errA) {
		t.Error("errors.Is 未遍历到链上全部错误")
	}
}

// TestScopeCloseErrKeepsPrimary 测试主体错误绝不被回卷失败覆盖
func TestScopeCloseErrKeepsPrimary(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("primary")

	bodyErr := errors.New("body failed")
	errA := errors.New("close a failed")
	errB := errors.New("close b failed")
	s.Defer("a", func() error { return errA })
	s.Defer("b", func() error { return errB })

	err := s.CloseErr(bodyErr)
	var rerr *types.ReleaseError
	if !errors.As(err, &rerr) {
		t.Fatalf("CloseErr() error 类型 = %T, want *types.ReleaseError", err)
	}
	if !errors.Is(rerr.Primary(), bodyErr) {
		t.Errorf("Primary() = %v, want 主体错误 %v", rerr.Primary(), bodyErr)
	}
	// 抑制顺序即发生顺序:逆序回卷先 b 后 a
	sup := rerr.Suppressed()
	if len(sup) != 2 || !errors.Is(sup[0], errB) || !errors.Is(sup[1], errA) {
		t.Errorf("Suppressed() = %v, want [%v %v]", sup, errB, errA)
	}
}

// TestScopeCloseErrNoFailures 测试回卷无失败时主体错误原样返回
func TestScopeCloseErrNoFailures(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("clean")

	bodyErr := errors.New("body failed")
	s.Defer("a", func() error { return nil })

	if err := s.CloseErr(bodyErr); err != bodyErr {
		t.Errorf("CloseErr() = %v, want 原样返回 %v", err, bodyErr)
	}
}

// TestScopeCloseIdempotent 测试关闭幂等
func TestScopeCloseIdempotent(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("idem")

	count := 0
	s.Defer("a", func() error { count++; return errors.New("fail") })

	if err := s.Close(); err == nil {
		t.Fatal("首次 Close() error = nil, want 失败")
	}
	if err := s.Close(); err != nil {
		t.Errorf("重复 Close() error = %v, want nil", err)
	}
	if count != 1 {
		t.Errorf("释放动作执行次数 = %d, want 1", count)
	}
	if !s.Closed() {
		t.Error("Closed() = false, want true")
	}
}

// TestScopeDeferAfterClose 测试关闭后拒绝新守卫
func TestScopeDeferAfterClose(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("closed")

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := s.Defer("late", func() error { return nil }); !errors.Is(err, types.ErrScopeClosed) {
		t.Errorf("关闭后 Defer() error = %v, want ErrScopeClosed", err)
	}
	if _, _, err := Acquire(s, 42, func(int) error { return nil }); !errors.Is(err, types.ErrScopeClosed) {
		t.Errorf("关闭后 Acquire() error = %v, want ErrScopeClosed", err)
	}
}

// TestScopeDeferNilRelease 测试空释放动作被拒绝
func TestScopeDeferNilRelease(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("nil")
	defer s.Close()

	if _, err := s.Defer("bad", nil); !errors.Is(err, types.ErrNilRelease) {
		t.Errorf("Defer(nil) error = %v, want ErrNilRelease", err)
	}
}

// TestScopeCloseWith 测试 defer 习惯用法
func TestScopeCloseWith(t *testing.T) {
	tracker := NewTracker()
	closeErr := errors.New("close failed")

	run := func(bodyErr error) (err error) {
		s := tracker.NewScope("with")
		defer s.CloseWith(&err)
		if _, err := s.Defer("a", func() error { return closeErr }); err != nil {
			return err
		}
		return bodyErr
	}

	// 主体无错:回卷失败晋升
	err := run(nil)
	if !errors.Is(err, closeErr) {
		t.Errorf("run(nil) error = %v, want %v", err, closeErr)
	}

	// 主体有错:主错误保留,回卷失败被抑制
	bodyErr := errors.New("body failed")
	err = run(bodyErr)
	var rerr *types.ReleaseError
	if !errors.As(err, &rerr) {
		t.Fatalf("run(bodyErr) error 类型 = %T, want *types.ReleaseError", err)
	}
	if !errors.Is(rerr.Primary(), bodyErr) {
		t.Errorf("Primary() = %v, want %v", rerr.Primary(), bodyErr)
	}
	if !errors.Is(err, closeErr) {
		t.Error("errors.Is 未找到被抑制的释放错误")
	}
}

// TestScopeMaxGuards 测试守卫数上限
func TestScopeMaxGuards(t *testing.T) {
	tracker := NewTracker(WithMaxGuards(2))
	s := tracker.NewScope("limited")
	defer s.Close()

	for i := 0; i < 2; i++ {
		if _, err := s.Defer(fmt.Sprintf("g%d", i), func() error { return nil }); err != nil {
			t.Fatalf("Defer(%d) error = %v", i, err)
		}
	}
	if _, err := s.Defer("overflow", func() error { return nil }); !errors.Is(err, types.ErrGuardLimitReached) {
		t.Errorf("超限 Defer() error = %v, want ErrGuardLimitReached", err)
	}

	// 释放一个后可以继续注册
	s.mu.Lock()
	g := s.guards[0]
	s.mu.Unlock()
	if err := g.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := s.Defer("again", func() error { return nil }); err != nil {
		t.Errorf("释放后 Defer() error = %v, want nil", err)
	}
}

// TestAcquire 测试泛型获取助手
func TestAcquire(t *testing.T) {
	tracker := NewTracker()
	s := tracker.NewScope("acquire")

	f := &fakeFile{}
	got, g, err := Acquire(s, f, func(v *fakeFile) error {
		v.closed = true
		return nil
	})
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got != f {
		t.Error("Acquire() 未原样透传资源")
	}
	if g.Name() != "*scope.fakeFile" {
		t.Errorf("守卫名称 = %q, want *scope.fakeFile", g.Name())
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !f.closed {
		t.Error("关闭后资源未被释放")
	}

	// 空释放动作被拒绝
	s2 := tracker.NewScope("acquire-nil")
	defer s2.Close()
	if _, _, err := Acquire[*fakeFile](s2, f, nil); !errors.Is(err, types.ErrNilRelease) {
		t.Errorf("Acquire(nil release) error = %v, want ErrNilRelease", err)
	}
}

// fakeFile 测试用资源
type fakeFile struct{ closed bool }

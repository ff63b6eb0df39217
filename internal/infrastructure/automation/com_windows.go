//go:build windows

package automation

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
	apperrors "github.com/alexisbeaulieu97/xlamctl/pkg/errors"
)

// sFalse is returned by CoInitializeEx when the thread is already
// initialized in the requested apartment.
const sFalse = 0x00000001

type comAutomation struct {
	logger ports.Logger
}

func newCOMAutomation(logger ports.Logger) (ports.Automation, error) {
	return &comAutomation{logger: logger}, nil
}

func (c *comAutomation) Channel() string { return ChannelCOM }

// Open starts a private Excel instance. The calling goroutine stays locked
// to its OS thread until Close.
func (c *comAutomation) Open(ctx context.Context) (ports.AutomationSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewAutomationError(ChannelCOM, "open_session", err)
	}

	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, apperrors.NewAutomationError(ChannelCOM, "open_session", err)
		}
	}

	fail := func(err error) (ports.AutomationSession, error) {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, apperrors.NewAutomationError(ChannelCOM, "open_session", err)
	}

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		return fail(fmt.Errorf("launch Excel: %w", err))
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		return fail(fmt.Errorf("query Excel interface: %w", err))
	}

	session := &comSession{app: app}
	for _, prop := range []string{"Visible", "DisplayAlerts"} {
		if _, err := oleutil.PutProperty(app, prop, false); err != nil {
			_ = session.Close()
			return nil, apperrors.NewAutomationError(ChannelCOM, "open_session", fmt.Errorf("set %s: %w", prop, err))
		}
	}

	c.logger.Debug(ctx, "com session opened")
	return session, nil
}

type comSession struct {
	app    *ole.IDispatch
	closed bool
}

func (s *comSession) addIns() (*ole.IDispatch, error) {
	if s.closed {
		return nil, errors.New("session is closed")
	}
	prop, err := oleutil.GetProperty(s.app, "AddIns")
	if err != nil {
		return nil, fmt.Errorf("get AddIns: %w", err)
	}
	return prop.ToIDispatch(), nil
}

func (s *comSession) ListAddins(ctx context.Context) ([]addin.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewAutomationError(ChannelCOM, "list_addins", err)
	}
	addins, err := s.addIns()
	if err != nil {
		return nil, apperrors.NewAutomationError(ChannelCOM, "list_addins", err)
	}
	defer addins.Release()

	countProp, err := oleutil.GetProperty(addins, "Count")
	if err != nil {
		return nil, apperrors.NewAutomationError(ChannelCOM, "list_addins", fmt.Errorf("get AddIns.Count: %w", err))
	}
	count := int(countProp.Val)

	entries := make([]addin.Entry, 0, count)
	for i := 1; i <= count; i++ {
		itemProp, err := oleutil.GetProperty(addins, "Item", i)
		if err != nil {
			continue
		}
		item := itemProp.ToIDispatch()
		entry, err := readEntry(item)
		item.Release()
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func readEntry(item *ole.IDispatch) (addin.Entry, error) {
	nameProp, err := oleutil.GetProperty(item, "Name")
	if err != nil {
		return addin.Entry{}, err
	}
	fullNameProp, err := oleutil.GetProperty(item, "FullName")
	if err != nil {
		return addin.Entry{}, err
	}
	installedProp, err := oleutil.GetProperty(item, "Installed")
	if err != nil {
		return addin.Entry{}, err
	}
	return addin.Entry{
		Name:      nameProp.ToString(),
		FullName:  fullNameProp.ToString(),
		Installed: installedProp.Val != 0,
	}, nil
}

// SetInstalled walks the collection and flips the first item that targets
// entry: by FullName when the entry carries one, by Name otherwise.
func (s *comSession) SetInstalled(ctx context.Context, entry addin.Entry, installed bool) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewAutomationError(ChannelCOM, "set_installed", err)
	}
	addins, err := s.addIns()
	if err != nil {
		return apperrors.NewAutomationError(ChannelCOM, "set_installed", err)
	}
	defer addins.Release()

	countProp, err := oleutil.GetProperty(addins, "Count")
	if err != nil {
		return apperrors.NewAutomationError(ChannelCOM, "set_installed", fmt.Errorf("get AddIns.Count: %w", err))
	}
	for i := 1; i <= int(countProp.Val); i++ {
		itemProp, err := oleutil.GetProperty(addins, "Item", i)
		if err != nil {
			continue
		}
		item := itemProp.ToIDispatch()
		current, err := readEntry(item)
		if err != nil || !targets(entry, current.Name, current.FullName) {
			item.Release()
			continue
		}
		_, err = oleutil.PutProperty(item, "Installed", installed)
		item.Release()
		if err != nil {
			return apperrors.NewAutomationError(ChannelCOM, "set_installed", err)
		}
		return nil
	}
	return apperrors.NewAutomationError(ChannelCOM, "set_installed", fmt.Errorf("add-in %q is not registered", entryLabel(entry)))
}

// OpenFile registers the file with AddIns.Add without copying it.
func (s *comSession) OpenFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewAutomationError(ChannelCOM, "open_file", err)
	}
	addins, err := s.addIns()
	if err != nil {
		return apperrors.NewAutomationError(ChannelCOM, "open_file", err)
	}
	defer addins.Release()

	result, err := oleutil.CallMethod(addins, "Add", path, false)
	if err != nil {
		return apperrors.NewAutomationError(ChannelCOM, "open_file", err)
	}
	if disp := result.ToIDispatch(); disp != nil {
		disp.Release()
	}
	return nil
}

func (s *comSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var quitErr error
	if s.app != nil {
		if _, err := oleutil.CallMethod(s.app, "Quit"); err != nil {
			quitErr = apperrors.NewAutomationError(ChannelCOM, "close_session", err)
		}
		s.app.Release()
		s.app = nil
	}
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	return quitErr
}

var (
	_ ports.Automation        = (*comAutomation)(nil)
	_ ports.AutomationSession = (*comSession)(nil)
)

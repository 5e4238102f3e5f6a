package main

import (
	"testing"

	"pulse/menu"
)

// 除 Window/Help 子菜单外,每个叶子角色都应能交给 wails 原生渲染
func TestNativeRolesCoverLeafRoles(t *testing.T) {
	submenuOnly := map[menu.Role]bool{
		menu.RoleWindow: true,
		menu.RoleHelp:   true,
	}
	for r := menu.RoleUndo; r <= menu.RoleHelp; r++ {
		if submenuOnly[r] {
			continue
		}
		if _, ok := nativeRoles[r]; !ok {
			t.Errorf("角色 %s 缺少 wails 原生映射", r)
		}
	}
}

// 用于窗口菜单的角色必须各自映射到不同的 wails 角色
func TestNativeRolesWindowMenu(t *testing.T) {
	roles := []menu.Role{menu.RoleMinimize, menu.RoleClose, menu.RoleZoom, menu.RoleFront}
	seen := make(map[int]menu.Role)
	for _, r := range roles {
		native, ok := nativeRoles[r]
		if !ok {
			t.Fatalf("角色 %s 缺少 wails 原生映射", r)
		}
		if prev, dup := seen[int(native)]; dup {
			t.Errorf("角色 %s 与 %s 映射到同一个 wails 角色", r, prev)
		}
		seen[int(native)] = r
	}
}
